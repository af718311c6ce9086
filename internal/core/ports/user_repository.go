package ports

import (
	"context"
	"time"

	"github.com/ebank/backoffice/internal/core/domain"
)

// UserRepository is the credential store. It owns User and Role records.
type UserRepository interface {
	// FindByLogin returns the user with its role resolved, or domain.ErrUserNotFound.
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	// Create inserts a new user; a taken login yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdatePassword rewrites only the password digest and update time of the
	// user with the given id; other fields are left as stored.
	UpdatePassword(ctx context.Context, id, digest string, updatedAt time.Time) error
}

// RoleRepository manages the shared role records.
type RoleRepository interface {
	FindByName(ctx context.Context, name domain.RoleName) (*domain.Role, error)
	// EnsureRoles creates any missing role and is safe to call repeatedly.
	EnsureRoles(ctx context.Context, names ...domain.RoleName) error
}
