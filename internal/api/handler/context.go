package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the identity injected by the Auth middleware. Both
// values must be present; their absence means the route was mounted without
// the middleware.
func ctxClaims(c echo.Context) (accountID, role string, err error) {
	accountID, _ = c.Get("account_id").(string)
	role, _ = c.Get("role").(string)
	if accountID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return accountID, role, nil
}
