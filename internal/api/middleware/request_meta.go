package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/ebank/backoffice/internal/pkg/reqctx"
)

// RequestMeta copies the client IP and request id into the request context so
// the service layer can attach them to audit events. It must run after
// echo's RequestID middleware.
func RequestMeta() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Request().Header.Get(echo.HeaderXRequestID)
			}

			req := c.Request()
			ctx := reqctx.WithMeta(req.Context(), reqctx.Meta{
				ClientIP:  c.RealIP(),
				RequestID: id,
			})
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
