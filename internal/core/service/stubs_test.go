package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ebank/backoffice/internal/core/domain"
	"github.com/ebank/backoffice/internal/infrastructure/security"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	findErr error
	saveErr error
	saves   int
	// afterFind runs once the copy handed to the caller has been taken.
	afterFind func()
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[login]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	found := cloneUser(u)
	if r.afterFind != nil {
		r.afterFind()
	}
	return found, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Login]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "id-" + user.Login
	}
	r.users[copy.Login] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, digest string, updatedAt time.Time) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	for _, u := range r.users {
		if u.ID == id {
			r.saves++
			u.PasswordHash = digest
			u.UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type stubRoleRepo struct{}

func (stubRoleRepo) FindByName(_ context.Context, name domain.RoleName) (*domain.Role, error) {
	if !name.Valid() {
		return nil, domain.ErrRoleNotFound
	}
	return &domain.Role{ID: "role-" + string(name), Name: name}, nil
}

func (stubRoleRepo) EnsureRoles(context.Context, ...domain.RoleName) error { return nil }

type stubTokens struct {
	err    error
	issued []domain.Principal
}

func (s *stubTokens) Issue(p domain.Principal) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.issued = append(s.issued, p)
	return "token-" + p.Login, nil
}

func (s *stubTokens) Parse(string) (domain.Principal, error) {
	return domain.Principal{}, errors.New("not implemented")
}

type stubAudit struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (a *stubAudit) Record(_ context.Context, e domain.AuthEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *stubAudit) last() domain.AuthEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.events) == 0 {
		return domain.AuthEvent{}
	}
	return a.events[len(a.events)-1]
}

func testHasher() *security.BcryptHasher {
	return security.NewBcryptHasher(bcrypt.MinCost)
}

// seedUser stores a user whose password is hashed with testHasher.
func seedUser(repo *stubUserRepo, login, password string, role domain.RoleName, enabled bool) *domain.User {
	digest, err := testHasher().Hash(password)
	if err != nil {
		panic(err)
	}
	u := &domain.User{
		ID:           "id-" + login,
		Login:        login,
		PasswordHash: digest,
		Enabled:      enabled,
		Role:         domain.Role{ID: "role-" + string(role), Name: role},
	}
	repo.users[login] = u
	return cloneUser(u)
}
