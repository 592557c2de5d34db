package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

func testServer(t *testing.T) (*echo.Echo, string) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	svc := NewService(newMockRepo(), tokens)
	u, err := svc.Create(context.Background(), "Admin", nil, "admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := tokens.Issue(u.ID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	e := echo.New()
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(zerolog.Nop())
	NewHandler(svc).RegisterRoutes(e, auth.EnsureLoggedIn(tokens))
	return e, token
}

func do(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLoginEndpoint(t *testing.T) {
	e, _ := testServer(t)

	rec := do(e, http.MethodPost, "/auth/login", `{"username":"admin","password":"s3cret-pass"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Token string                 `json:"token"`
		User  map[string]interface{} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Token == "" {
		t.Error("expected token in response")
	}
	if _, present := body.User["passwordHash"]; present {
		t.Error("password hash must not serialize")
	}
}

func TestLoginEndpoint_Failures(t *testing.T) {
	e, _ := testServer(t)

	rec := do(e, http.MethodPost, "/auth/login", `{"username":"ghost","password":"whatever1"}`, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown user: expected 404, got %d", rec.Code)
	}

	rec = do(e, http.MethodPost, "/auth/login", `{"username":"admin","password":"wrong-pass"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid password") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}

	rec = do(e, http.MethodPost, "/auth/login", `{"username":"admin"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing password: expected 400, got %d", rec.Code)
	}
}

func TestGetUserEndpoint(t *testing.T) {
	e, token := testServer(t)

	rec := do(e, http.MethodGet, "/user/1", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/user/99", "", token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User with id: 99 not found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetUserEndpoint_RequiresToken(t *testing.T) {
	e, _ := testServer(t)

	rec := do(e, http.MethodGet, "/user/1", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/user/1", "", "not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for garbage token, got %d", rec.Code)
	}
}
