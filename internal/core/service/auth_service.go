package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ebank/backoffice/internal/core/domain"
	"github.com/ebank/backoffice/internal/core/ports"
	"github.com/ebank/backoffice/internal/infrastructure/metrics"
	"github.com/ebank/backoffice/internal/pkg/reqctx"
)

// AuthService implements login, password rotation and bootstrap registration.
type AuthService struct {
	authenticator ports.Authenticator
	users         ports.UserRepository
	roles         ports.RoleRepository
	hasher        ports.PasswordHasher
	tokens        ports.TokenIssuer
	audit         ports.AuditRecorder
	log           zerolog.Logger
	now           func() time.Time
}

func NewAuthService(
	authenticator ports.Authenticator,
	users ports.UserRepository,
	roles ports.RoleRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	if audit == nil {
		audit = nopRecorder{}
	}
	return &AuthService{
		authenticator: authenticator,
		users:         users,
		roles:         roles,
		hasher:        hasher,
		tokens:        tokens,
		audit:         audit,
		log:           log,
		now:           time.Now,
	}
}

// Login authenticates the pair and mints a token bound to the login.
// Any authentication failure is returned as domain.ErrInvalidCredentials;
// the real cause only reaches the log and the audit trail.
func (s *AuthService) Login(ctx context.Context, login, password string) (*ports.LoginResult, error) {
	principal, err := s.authenticator.Authenticate(ctx, login, password)
	if err != nil {
		reason := loginFailureReason(err)
		metrics.LoginAttemptsTotal.WithLabelValues(reason).Inc()

		ev := s.log.Warn()
		if reason == "error" {
			ev = s.log.Error()
		}
		ev.Err(err).Str("login", login).Str("reason", reason).Msg("login rejected")

		s.record(ctx, domain.EventLoginFailed, login, reason)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(principal)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("login", login).Msg("token issuance failed")
		return nil, fmt.Errorf("login: %w: %v", domain.ErrInternal, err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("login", principal.Login).Str("role", principal.Role.String()).Msg("login succeeded")
	s.record(ctx, domain.EventLoginSucceeded, principal.Login, "")

	return &ports.LoginResult{Token: token, Role: principal.Role}, nil
}

// ChangePassword replaces the stored digest of the principal's account once
// oldPassword has been verified against the current one.
func (s *AuthService) ChangePassword(ctx context.Context, principal domain.Principal, oldPassword, newPassword string) error {
	user, err := s.users.FindByLogin(ctx, principal.Login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.rejectPasswordChange(ctx, principal.Login, "rejected", err)
			return domain.ErrInvalidCredentials
		}
		return s.failPasswordChange(principal.Login, fmt.Errorf("find user: %w", err))
	}

	if !user.Enabled {
		s.rejectPasswordChange(ctx, user.Login, "rejected", domain.ErrAccountDisabled)
		return domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		s.rejectPasswordChange(ctx, user.Login, "invalid_old_password", domain.ErrPasswordMismatch)
		return domain.ErrInvalidOldPassword
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		if errors.Is(err, domain.ErrPasswordTooLong) {
			s.rejectPasswordChange(ctx, user.Login, "rejected", err)
			return domain.ErrPasswordTooLong
		}
		return s.failPasswordChange(user.Login, fmt.Errorf("hash password: %w", err))
	}

	if err := s.users.UpdatePassword(ctx, user.ID, digest, s.now().UTC()); err != nil {
		return s.failPasswordChange(user.Login, fmt.Errorf("save user: %w", err))
	}

	metrics.PasswordChangesTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("login", user.Login).Msg("password changed")
	s.record(ctx, domain.EventPasswordChanged, user.Login, "")
	return nil
}

// Refresh issues a new token for the principal of a still-valid token. The
// user is reloaded so a disabled account or a changed role takes effect.
func (s *AuthService) Refresh(ctx context.Context, principal domain.Principal) (*ports.LoginResult, error) {
	user, err := s.users.FindByLogin(ctx, principal.Login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Err(err).Str("login", principal.Login).Msg("token refresh rejected")
			return nil, domain.ErrInvalidCredentials
		}
		s.log.Error().Err(err).Str("login", principal.Login).Msg("token refresh failed")
		return nil, fmt.Errorf("refresh: %w: %v", domain.ErrInternal, err)
	}
	if !user.Enabled {
		s.log.Warn().Err(domain.ErrAccountDisabled).Str("login", user.Login).Msg("token refresh rejected")
		return nil, domain.ErrInvalidCredentials
	}

	current := user.Principal()
	token, err := s.tokens.Issue(current)
	if err != nil {
		s.log.Error().Err(err).Str("login", user.Login).Msg("token issuance failed")
		return nil, fmt.Errorf("refresh: %w: %v", domain.ErrInternal, err)
	}

	s.log.Debug().Str("login", user.Login).Msg("token refreshed")
	s.record(ctx, domain.EventTokenRefreshed, user.Login, "")
	return &ports.LoginResult{Token: token, Role: current.Role}, nil
}

// Register creates an enabled user with a hashed password. It backs the
// bootstrap administrator; self-service registration is not exposed.
func (s *AuthService) Register(ctx context.Context, login, password string, role domain.RoleName) (*domain.User, error) {
	if login == "" || password == "" || !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	r, err := s.roles.FindByName(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Login:        login,
		PasswordHash: digest,
		Enabled:      true,
		Role:         *r,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("login", login).Str("role", role.String()).Msg("user registered")
	return created, nil
}

func (s *AuthService) rejectPasswordChange(ctx context.Context, login, result string, cause error) {
	metrics.PasswordChangesTotal.WithLabelValues(result).Inc()
	s.log.Warn().Err(cause).Str("login", login).Msg("password change rejected")
	s.record(ctx, domain.EventPasswordChangeRejected, login, cause.Error())
}

func (s *AuthService) failPasswordChange(login string, err error) error {
	metrics.PasswordChangesTotal.WithLabelValues("error").Inc()
	s.log.Error().Err(err).Str("login", login).Msg("password change failed")
	return fmt.Errorf("change password: %w: %v", domain.ErrInternal, err)
}

func (s *AuthService) record(ctx context.Context, typ domain.AuthEventType, login, reason string) {
	meta, _ := reqctx.MetaFromContext(ctx)
	s.audit.Record(ctx, domain.AuthEvent{
		Type:      typ,
		Login:     login,
		Reason:    reason,
		ClientIP:  meta.ClientIP,
		RequestID: meta.RequestID,
		Timestamp: s.now().UTC(),
	})
}

// loginFailureReason classifies an authenticator error for logs and metrics.
func loginFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrAccountDisabled):
		return "account_disabled"
	case errors.Is(err, domain.ErrPasswordMismatch):
		return "password_mismatch"
	default:
		return "error"
	}
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, domain.AuthEvent) {}
