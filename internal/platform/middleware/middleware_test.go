package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

func TestRequestID_Generated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	handler := RequestID()(func(c echo.Context) error {
		seen, _ = c.Get("request_id").(string)
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if seen == "" {
		t.Error("expected generated request id on context")
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("response header %q does not match context id %q", rec.Header().Get(RequestIDHeader), seen)
	}
}

func TestRequestID_ClientSupplied(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-id-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error { return nil })
	if err := handler(c); err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if got := rec.Header().Get(RequestIDHeader); got != "client-id-123" {
		t.Errorf("expected client id to be honored, got %q", got)
	}
}

func logLine(t *testing.T, handlerErr error) map[string]interface{} {
	t.Helper()
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/doctor?name=rao", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("request_id", "rid-1")

	handler := Logger(logger)(func(c echo.Context) error { return handlerErr })
	_ = handler(c)

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log output is not one JSON line: %v (%s)", err, buf.String())
	}
	return line
}

func TestLogger_Fields(t *testing.T) {
	line := logLine(t, nil)

	if line["level"] != "info" {
		t.Errorf("expected info level, got %v", line["level"])
	}
	if line["request_id"] != "rid-1" {
		t.Errorf("expected correlation id, got %v", line["request_id"])
	}
	if line["method"] != "GET" || line["path"] != "/doctor" || line["query"] != "name=rao" {
		t.Errorf("unexpected request fields: %v", line)
	}
}

func TestLogger_DomainErrorsLogAtWarn(t *testing.T) {
	line := logLine(t, apperr.NotFoundf("Doctor with id: 9 not found"))

	if line["level"] != "warn" {
		t.Errorf("expected warn level for tagged error, got %v", line["level"])
	}
	if line["kind"] != "not_found" {
		t.Errorf("expected kind field, got %v", line["kind"])
	}
}

func TestLogger_UntaggedErrorsLogAtError(t *testing.T) {
	line := logLine(t, errors.New("boom"))

	if line["level"] != "error" {
		t.Errorf("expected error level for untagged error, got %v", line["level"])
	}
}

func TestRecovery(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Recovery(zerolog.Nop())(func(c echo.Context) error {
		panic("boom")
	})
	err := handler(c)
	if err == nil {
		t.Fatal("expected panic to surface as an error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 HTTPError, got %v", err)
	}
}
