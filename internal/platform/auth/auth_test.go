package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue(42)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.ID != 42 {
		t.Errorf("expected user id 42, got %d", claims.ID)
	}
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Issue(1)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := m.Verify(token); err == nil {
		t.Error("expected expired token to fail verification")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue(1)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := NewTokenManager("secret-b", time.Hour).Verify(token); err == nil {
		t.Error("expected verification under a different secret to fail")
	}
}

func gateRequest(t *testing.T, m *TokenManager, header string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		id, ok := UserIDFromContext(c.Request().Context())
		if !ok {
			t.Error("expected user id on request context")
		}
		if id != 7 {
			t.Errorf("expected user id 7, got %d", id)
		}
		return nil
	}
	return EnsureLoggedIn(m)(next)(c)
}

func TestEnsureLoggedIn(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	token, err := m.Issue(7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if err := gateRequest(t, m, "Bearer "+token); err != nil {
		t.Errorf("expected valid token to pass, got %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", token},
		{"wrong scheme", "Basic " + token},
		{"garbage token", "Bearer not-a-token"},
	}
	for _, tc := range cases {
		err := gateRequest(t, m, tc.header)
		if apperr.KindOf(err) != apperr.KindUnauthorized {
			t.Errorf("%s: expected unauthorized, got %v", tc.name, err)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Error("hash must not equal plaintext")
	}
	if !CheckPassword("s3cret-pass", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPassword("wrong-pass", hash) {
		t.Error("expected mismatched password to fail")
	}
}
