package user

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts login and the single-user lookup. Login is
// necessarily open; the lookup requires a valid bearer token.
func (h *Handler) RegisterRoutes(e *echo.Echo, gate echo.MiddlewareFunc) {
	e.POST("/auth/login", h.Login)
	e.GET("/user/:id", h.Get, gate)
}

func (h *Handler) Login(c echo.Context) error {
	var p LoginPayload
	if err := c.Bind(&p); err != nil {
		return apperr.Validationf("invalid request body")
	}
	result, err := h.svc.Login(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return apperr.Validationf("id must be a positive integer")
	}
	u, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}
