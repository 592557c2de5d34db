package doctor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/query"
)

type mockRepo struct {
	rows   map[int64]*Doctor
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{rows: make(map[int64]*Doctor), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	d.ID = m.nextID
	m.nextID++
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	m.rows[d.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Doctor, error) {
	row, ok := m.rows[id]
	if !ok || row.Deleted {
		return nil, ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, d *Doctor) error {
	row, ok := m.rows[d.ID]
	if !ok || row.Deleted {
		return ErrNotFound
	}
	d.CreatedAt = row.CreatedAt
	d.UpdatedAt = time.Now()
	cp := *d
	m.rows[d.ID] = &cp
	return nil
}

func (m *mockRepo) SoftDelete(_ context.Context, id int64) (*Doctor, error) {
	row, ok := m.rows[id]
	if !ok || row.Deleted {
		return nil, ErrNotFound
	}
	row.Deleted = true
	cp := *row
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context, f Filter, p query.Params) ([]*Doctor, int, error) {
	var matched []*Doctor
	for _, row := range m.rows {
		if row.Deleted {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(row.Name), strings.ToLower(f.Name)) {
			continue
		}
		matched = append(matched, row)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	total := len(matched)
	if p.Offset() >= total {
		return nil, total, nil
	}
	matched = matched[p.Offset():]
	if len(matched) > p.FetchLimit() {
		matched = matched[:p.FetchLimit()]
	}
	return matched, total, nil
}

func testServer() (*echo.Echo, *mockRepo) {
	repo := newMockRepo()
	e := echo.New()
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(zerolog.Nop())
	NewHandler(NewService(repo)).RegisterRoutes(e.Group("/doctor"))
	return e, repo
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateEndpoint(t *testing.T) {
	e, _ := testServer()

	rec := do(e, http.MethodPost, "/doctor", `{"name":"Dr. Asha Rao","phone":"9876543210"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["name"] != "Dr. Asha Rao" {
		t.Errorf("unexpected name %v", body["name"])
	}
	if _, present := body["deleted"]; present {
		t.Error("deleted flag must not appear in responses")
	}
}

func TestCreateEndpoint_Invalid(t *testing.T) {
	e, _ := testServer()

	rec := do(e, http.MethodPost, "/doctor", `{"name":"ab"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"errors"`) {
		t.Errorf("expected error envelope, got %s", rec.Body.String())
	}
}

func TestGetEndpoint(t *testing.T) {
	e, _ := testServer()
	do(e, http.MethodPost, "/doctor", `{"name":"Dr. Asha Rao"}`)

	rec := do(e, http.MethodGet, "/doctor/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/doctor/99", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Doctor with id: 99 not found") {
		t.Errorf("unexpected message: %s", rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/doctor/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}

func TestUpdateEndpoint(t *testing.T) {
	e, _ := testServer()
	do(e, http.MethodPost, "/doctor", `{"name":"Dr. Asha Rao"}`)

	rec := do(e, http.MethodPut, "/doctor/1", `{"name":"Dr. Asha Menon"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Dr. Asha Menon") {
		t.Errorf("expected updated name in body: %s", rec.Body.String())
	}

	rec = do(e, http.MethodPut, "/doctor/99", `{"name":"Dr. Asha Menon"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteEndpoint(t *testing.T) {
	e, _ := testServer()
	do(e, http.MethodPost, "/doctor", `{"name":"Dr. Asha Rao"}`)

	rec := do(e, http.MethodDelete, "/doctor/1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	// row is now hidden
	rec = do(e, http.MethodGet, "/doctor/1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}

	// second delete same as deleting a missing row
	rec = do(e, http.MethodDelete, "/doctor/1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on double delete, got %d", rec.Code)
	}
}

func TestListEndpoint(t *testing.T) {
	e, _ := testServer()
	do(e, http.MethodPost, "/doctor", `{"name":"Dr. Asha Rao"}`)
	do(e, http.MethodPost, "/doctor", `{"name":"Dr. Vikram Shah"}`)

	rec := do(e, http.MethodGet, "/doctor?name=shah", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var page struct {
		Data    []map[string]interface{} `json:"data"`
		HasMore bool                     `json:"hasMore"`
		Total   int                      `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(page.Data) != 1 || page.Total != 1 || page.HasMore {
		t.Errorf("unexpected page: %s", rec.Body.String())
	}
}

func TestListEndpoint_RejectsUnknownFilter(t *testing.T) {
	e, _ := testServer()

	rec := do(e, http.MethodGet, "/doctor?specialty=radiology", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unrecognized filter, got %d", rec.Code)
	}
}
