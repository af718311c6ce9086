package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ebank/backoffice/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware.
// A missing or empty principal means the route was mounted without Auth.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := c.Get("principal").(domain.Principal)
	if !ok || p.Login == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}
