package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

type contextKey string

// UserIDKey is the request-context key holding the authenticated user's id.
const UserIDKey contextKey = "user_id"

// EnsureLoggedIn rejects requests that do not carry a valid bearer token.
// Missing, malformed, badly signed, or expired tokens all answer 401 before
// the handler runs. On success the token's user id is placed on the request
// context under UserIDKey.
func EnsureLoggedIn(tokens *TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return apperr.Unauthorized("missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return apperr.Unauthorized("invalid authorization format")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return apperr.Unauthorized("invalid or expired token")
			}

			ctx := context.WithValue(c.Request().Context(), UserIDKey, claims.ID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// UserIDFromContext returns the authenticated user's id, if the request
// passed through EnsureLoggedIn.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}
