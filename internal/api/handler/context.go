package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/inventory-system/internal/api/middleware"
	"github.com/99minutos/inventory-system/internal/core/domain"
)

// currentUser returns the caller authorized by the gate middleware. A route
// registered without the gate has no caller and yields ErrUnauthenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	u, ok := middleware.UserFromContext(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return u, nil
}

// bindBody decodes the request body into dst and runs the registered validator.
func bindBody(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return domain.InvalidInput("invalid payload")
	}
	if c.Echo().Validator != nil {
		if err := c.Validate(dst); err != nil {
			return err
		}
	}
	return nil
}
