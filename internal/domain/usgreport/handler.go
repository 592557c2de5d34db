package usgreport

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/query"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.Validationf("id must be a positive integer")
	}
	return id, nil
}

func filterFromContext(c echo.Context) (Filter, error) {
	var f Filter

	if raw := c.QueryParam("patient"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return Filter{}, apperr.Validationf("patient must be a positive integer")
		}
		f.Patient = id
	}
	if raw := c.QueryParam("referrer"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return Filter{}, apperr.Validationf("referrer must be a positive integer")
		}
		f.Referrer = id
	}
	f.PartOfScan = c.QueryParam("partOfScan")
	f.Findings = c.QueryParam("findings")

	if raw := c.QueryParam("date_after"); raw != "" {
		t, err := ParseDate(raw)
		if err != nil {
			return Filter{}, apperr.Validationf("date_after must be an ISO 8601 date")
		}
		f.DateAfter = &t
	}
	if raw := c.QueryParam("date_before"); raw != "" {
		t, err := ParseDate(raw)
		if err != nil {
			return Filter{}, apperr.Validationf("date_before must be an ISO 8601 date")
		}
		f.DateBefore = &t
	}
	return f, nil
}

func (h *Handler) List(c echo.Context) error {
	if err := query.CheckParams(c, "patient", "referrer", "partOfScan", "findings", "date_after", "date_before"); err != nil {
		return err
	}
	p, err := query.ParamsFromContext(c)
	if err != nil {
		return err
	}
	f, err := filterFromContext(c)
	if err != nil {
		return err
	}
	page, err := h.svc.List(c.Request().Context(), f, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *Handler) Create(c echo.Context) error {
	var p Payload
	if err := c.Bind(&p); err != nil {
		return apperr.Validationf("invalid request body")
	}
	r, err := h.svc.Create(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	r, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var p Payload
	if err := c.Bind(&p); err != nil {
		return apperr.Validationf("invalid request body")
	}
	r, err := h.svc.Update(c.Request().Context(), id, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Delete soft-deletes the report and returns it, stripped of internal
// fields, in the response body.
func (h *Handler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	r, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}
