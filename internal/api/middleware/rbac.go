package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/ebank/backoffice/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth.
// Rejections return domain.ErrForbidden for the central error handler.
func RBAC(allowedRoles ...domain.RoleName) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r.String()] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
