package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/inventory-system/internal/api/metrics"
	"github.com/99minutos/inventory-system/internal/core/domain"
	"github.com/99minutos/inventory-system/internal/core/ports"
)

// UserContextKey is the echo.Context key holding the authorized *domain.User.
const UserContextKey = "user"

// RequireRole guards a route with the authorization gate. The caller must
// present a bearer token whose user holds any of roles. On success the
// authorized user is stored in the context; on failure the handler never runs
// and the error is left to the HTTP error handler.
func RequireRole(authz ports.Authorizer, roles ...domain.Role) echo.MiddlewareFunc {
	required := append([]domain.Role(nil), roles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := authz.Authorize(c.Request().Context(), bearerToken(c), required)
			if err != nil {
				metrics.AuthDecisionsTotal.WithLabelValues(decisionLabel(err)).Inc()
				return err
			}
			metrics.AuthDecisionsTotal.WithLabelValues("allowed").Inc()

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// UserFromContext returns the user stored by RequireRole.
func UserFromContext(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(UserContextKey).(*domain.User)
	return u, ok && u != nil
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when the header is absent or uses another scheme.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decisionLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrForbidden):
		return "denied"
	default:
		return "error"
	}
}
