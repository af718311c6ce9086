package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ebank/backoffice/internal/core/domain"
	"github.com/ebank/backoffice/internal/core/ports"
)

// timingDecoy is hashed once and verified against whenever the login is
// unknown, so a miss costs about as much as a wrong password.
const timingDecoy = "ebank-timing-decoy"

// CredentialAuthenticator verifies a login/password pair against the user store.
type CredentialAuthenticator struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher

	decoyOnce   sync.Once
	decoyDigest string
}

func NewCredentialAuthenticator(users ports.UserRepository, hasher ports.PasswordHasher) *CredentialAuthenticator {
	return &CredentialAuthenticator{users: users, hasher: hasher}
}

// Authenticate returns the principal of an enabled user whose stored digest
// matches password. Failures wrap domain.ErrUserNotFound,
// domain.ErrAccountDisabled, domain.ErrPasswordMismatch or a store error.
func (a *CredentialAuthenticator) Authenticate(ctx context.Context, login, password string) (domain.Principal, error) {
	if login == "" || password == "" {
		return domain.Principal{}, domain.ErrPasswordMismatch
	}

	user, err := a.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			a.hasher.Verify(password, a.decoy())
		}
		return domain.Principal{}, fmt.Errorf("authenticate %q: %w", login, err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return domain.Principal{}, domain.ErrPasswordMismatch
	}
	if !user.Enabled {
		return domain.Principal{}, domain.ErrAccountDisabled
	}

	return user.Principal(), nil
}

func (a *CredentialAuthenticator) decoy() string {
	a.decoyOnce.Do(func() {
		a.decoyDigest, _ = a.hasher.Hash(timingDecoy)
	})
	return a.decoyDigest
}
