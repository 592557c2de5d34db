package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

// Logger emits one structured line per request, tied to the correlation id
// set by RequestID. Tagged domain outcomes (validation, auth, not-found,
// conflict) are expected traffic and log at warn with their kind; untagged
// errors log at error.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			rid, _ := c.Get("request_id").(string)
			if rid == "" {
				rid = c.Response().Header().Get(RequestIDHeader)
			}

			var evt *zerolog.Event
			switch {
			case err == nil:
				evt = logger.Info()
			case apperr.KindOf(err) != apperr.KindUnknown:
				evt = logger.Warn().Str("kind", apperr.KindOf(err).String()).Err(err)
			default:
				evt = logger.Error().Err(err)
			}

			evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("query", req.URL.RawQuery).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")

			return err
		}
	}
}
