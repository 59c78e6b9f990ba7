package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/movieplatform/movie-api/internal/pkg/token"
)

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// Auth validates the bearer token and injects "account_id" and "role" into
// the Echo context.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			scheme, raw, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(raw) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := verifier.Verify(strings.TrimSpace(raw))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("account_id", claims.AccountID)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}
