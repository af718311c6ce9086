package ports

import (
	"context"

	"github.com/ebank/backoffice/internal/core/domain"
)

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token string
	Role  domain.RoleName
}

type AuthService interface {
	Login(ctx context.Context, login, password string) (*LoginResult, error)
	ChangePassword(ctx context.Context, principal domain.Principal, oldPassword, newPassword string) error
	Refresh(ctx context.Context, principal domain.Principal) (*LoginResult, error)
	Register(ctx context.Context, login, password string, role domain.RoleName) (*domain.User, error)
}
