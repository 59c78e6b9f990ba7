package middleware

import (
	"fmt"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/movieplatform/movie-api/internal/core/domain"
)

// RBAC admits callers whose token role is one of roles. It must run after
// Auth; a request without a role is rejected. The returned error wraps
// domain.ErrForbidden and is rendered by the central error handler.
func RBAC(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if !slices.Contains(roles, role) {
				return fmt.Errorf("%w: role %q", domain.ErrForbidden, role)
			}
			return next(c)
		}
	}
}
