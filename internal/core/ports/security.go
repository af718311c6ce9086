package ports

import (
	"context"

	"github.com/ebank/backoffice/internal/core/domain"
)

// PasswordHasher hashes passwords with a slow, salted, one-way algorithm.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches digest. It never compares plaintexts.
	Verify(plaintext, digest string) bool
}

// TokenIssuer mints and verifies signed, expiring bearer tokens.
type TokenIssuer interface {
	Issue(principal domain.Principal) (string, error)
	Parse(token string) (domain.Principal, error)
}

// Authenticator checks a login/password pair against the credential store.
// Failures carry their precise cause; callers decide what to expose.
type Authenticator interface {
	Authenticate(ctx context.Context, login, password string) (domain.Principal, error)
}
