package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/ebank/backoffice/internal/pkg/reqctx"
)

func TestRequestMeta_PropagatesIPAndRequestID(t *testing.T) {
	e := echo.New()
	e.Use(echomiddleware.RequestID())
	e.Use(RequestMeta())

	var got reqctx.Meta
	var found bool
	e.GET("/", func(c echo.Context) error {
		got, found = reqctx.MetaFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-7")
	req.RemoteAddr = "192.0.2.10:5555"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if !found {
		t.Fatalf("expected request meta in context")
	}
	if got.RequestID != "req-7" {
		t.Fatalf("expected request id req-7, got %q", got.RequestID)
	}
	if got.ClientIP != "192.0.2.10" {
		t.Fatalf("expected client ip 192.0.2.10, got %q", got.ClientIP)
	}
}
