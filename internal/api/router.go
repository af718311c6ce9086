package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/ebank/backoffice/internal/api/handler"
	"github.com/ebank/backoffice/internal/api/middleware"
	"github.com/ebank/backoffice/internal/core/domain"
	"github.com/ebank/backoffice/internal/core/ports"
	_ "github.com/ebank/backoffice/internal/docs"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	AuthService    ports.AuthService
	AccountService ports.AccountService
	Tokens         ports.TokenIssuer
	HealthChecks   map[string]handler.HealthCheck
	Logger         zerolog.Logger

	// Registerer and Gatherer default to the prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestMeta())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "ebank",
		Registerer: deps.Registerer,
	}))

	authHandler := handler.NewAuthHandler(deps.AuthService)
	accountHandler := handler.NewAccountHandler(deps.AccountService)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)
	requireAuth := middleware.Auth(deps.Tokens)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/change-password", authHandler.ChangePassword, requireAuth)
	auth.POST("/refresh", authHandler.Refresh, requireAuth)
	auth.GET("/validate", authHandler.Validate, requireAuth)

	// --- Bank accounts (back-office staff only) ---
	accounts := api.Group("/accounts", requireAuth, middleware.RBAC(domain.RoleAdmin, domain.RoleAgent))
	accounts.GET("/exists", accountHandler.Exists)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness: is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness: are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
