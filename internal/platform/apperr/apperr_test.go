package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(Validationf("bad")); got != KindValidation {
		t.Errorf("expected KindValidation, got %v", got)
	}
	if got := KindOf(NotFoundf("missing")); got != KindNotFound {
		t.Errorf("expected KindNotFound, got %v", got)
	}
	// kind survives wrapping
	wrapped := fmt.Errorf("while handling request: %w", Unauthorized("no token"))
	if got := KindOf(wrapped); got != KindUnauthorized {
		t.Errorf("expected KindUnauthorized through wrap, got %v", got)
	}
	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Errorf("expected KindUnknown for untagged error, got %v", got)
	}
	if got := KindOf(nil); got != KindUnknown {
		t.Errorf("expected KindUnknown for nil, got %v", got)
	}
}

func TestConflictfKeepsCause(t *testing.T) {
	cause := errors.New("fk violation")
	err := Conflictf(cause, "Invalid referrer or patient")
	if err.Message != "Invalid referrer or patient" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable via errors.Is")
	}
}

func render(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	HTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{Validationf("name is required"), http.StatusBadRequest},
		{Conflictf(nil, "Invalid referrer or patient"), http.StatusBadRequest},
		{Unauthorized("invalid or expired token"), http.StatusUnauthorized},
		{NotFoundf("Doctor with id: 9 not found"), http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := render(t, tc.err)
		if rec.Code != tc.code {
			t.Errorf("%v: expected status %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestHTTPErrorHandler_Envelope(t *testing.T) {
	rec := render(t, NotFoundf("Patient with id: 4 not found"))

	var body struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(body.Errors) != 1 || body.Errors[0].Message != "Patient with id: 4 not found" {
		t.Errorf("unexpected envelope: %s", rec.Body.String())
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	rec := render(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_UnknownIs500(t *testing.T) {
	rec := render(t, errors.New("boom"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body for unknown error, got %q", rec.Body.String())
	}
}
