// @title           eBank Back-Office API
// @version         1.0
// @description     Authentication and account lookup endpoints of the eBank back office.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ebank/backoffice/internal/api"
	"github.com/ebank/backoffice/internal/api/handler"
	"github.com/ebank/backoffice/internal/core/domain"
	"github.com/ebank/backoffice/internal/core/ports"
	"github.com/ebank/backoffice/internal/core/service"
	"github.com/ebank/backoffice/internal/infrastructure/config"
	mongodb "github.com/ebank/backoffice/internal/infrastructure/db/mongo"
	redisdb "github.com/ebank/backoffice/internal/infrastructure/db/redis"
	"github.com/ebank/backoffice/internal/infrastructure/queue"
	"github.com/ebank/backoffice/internal/infrastructure/security"
	"github.com/ebank/backoffice/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "backoffice: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})
	log.Info().Str("env", cfg.Env).Msg("config loaded, connecting to MongoDB and Redis")

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	roles := mongodb.NewRoleRepository(db)
	accounts := mongodb.NewBankAccountRepository(db)
	events := mongodb.NewAuthEventRepository(db)

	if err := roles.EnsureRoles(ctx, domain.Roles...); err != nil {
		return err
	}

	// --- Security ---
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	issuer, err := security.NewJWTIssuer(security.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL,
	})
	if err != nil {
		return err
	}

	// --- Audit trail ---
	dispatcher := queue.NewAuditDispatcher(cfg.Audit.Workers, cfg.Audit.Buffer, events, log)
	// Workers outlive the signal context so queued events drain on Close.
	dispatcher.Start(context.WithoutCancel(ctx))
	defer dispatcher.Close()

	// --- Services ---
	authService := service.NewAuthService(
		service.NewCredentialAuthenticator(users, hasher),
		users, roles, hasher, issuer, dispatcher, log,
	)
	accountService := service.NewAccountService(accounts, redisdb.NewRIBCache(rdb, cfg.Redis.RIBCacheTTL), log)

	if err := seedAdmin(ctx, authService, cfg.Bootstrap, log); err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		AuthService:    authService,
		AccountService: accountService,
		Tokens:         issuer,
		HealthChecks: map[string]handler.HealthCheck{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
		Logger: log,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// seedAdmin creates the bootstrap administrator when one is configured.
// An existing account with that login is left untouched.
func seedAdmin(ctx context.Context, svc ports.AuthService, cfg config.BootstrapConfig, log zerolog.Logger) error {
	if cfg.AdminLogin == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := svc.Register(ctx, cfg.AdminLogin, cfg.AdminPassword, domain.RoleAdmin)
	switch {
	case errors.Is(err, domain.ErrUserExists):
		log.Debug().Str("login", cfg.AdminLogin).Msg("bootstrap admin already present")
		return nil
	case err != nil:
		return fmt.Errorf("seed admin: %w", err)
	}

	log.Info().Str("login", cfg.AdminLogin).Msg("bootstrap admin created")
	return nil
}
