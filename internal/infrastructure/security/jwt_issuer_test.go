package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebank/backoffice/internal/core/domain"
)

func newTestIssuer(t *testing.T) *JWTIssuer {
	t.Helper()
	issuer, err := NewJWTIssuer(JWTConfig{Secret: "secret", Issuer: "ebank", TTL: time.Hour})
	require.NoError(t, err)
	return issuer
}

func TestJWTIssuer_IssueAndParse(t *testing.T) {
	issuer := newTestIssuer(t)
	alice := domain.Principal{UserID: "u1", Login: "alice", Role: domain.RoleAdmin}

	token, err := issuer.Issue(alice)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, alice, got)
}

func TestJWTIssuer_Claims(t *testing.T) {
	issuer := newTestIssuer(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	issuer.now = func() time.Time { return fixed }

	token, err := issuer.Issue(domain.Principal{Login: "alice", Role: domain.RoleAgent})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return fixed }))
	require.NoError(t, err)

	assert.Equal(t, "alice", claims["sub"])
	assert.Equal(t, "AGENT", claims["role"])
	assert.Equal(t, "ebank", claims["iss"])
	assert.Equal(t, float64(fixed.Add(time.Hour).Unix()), claims["exp"])
	assert.NotEmpty(t, claims["jti"])
}

func TestJWTIssuer_UniqueTokenIDs(t *testing.T) {
	issuer := newTestIssuer(t)
	p := domain.Principal{Login: "alice", Role: domain.RoleAdmin}

	a, err := issuer.Issue(p)
	require.NoError(t, err)
	b, err := issuer.Issue(p)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestJWTIssuer_Expired(t *testing.T) {
	issuer := newTestIssuer(t)
	issuer.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	token, err := issuer.Issue(domain.Principal{Login: "alice", Role: domain.RoleAdmin})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTIssuer_RejectsForeignTokens(t *testing.T) {
	issuer := newTestIssuer(t)
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	cases := map[string]string{}

	wrongKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice", Issuer: "ebank", ExpiresAt: exp,
	}).SignedString([]byte("other"))
	require.NoError(t, err)
	cases["wrong key"] = wrongKey

	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject: "alice", Issuer: "ebank", ExpiresAt: exp,
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	cases["wrong alg"] = wrongAlg

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice", Issuer: "someone-else", ExpiresAt: exp,
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	cases["wrong issuer"] = wrongIssuer

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice", Issuer: "ebank",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	cases["no expiry"] = noExpiry

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer: "ebank", ExpiresAt: exp,
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	cases["no subject"] = noSubject

	cases["garbage"] = "not-a-token"

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Parse(token)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

func TestNewJWTIssuer(t *testing.T) {
	_, err := NewJWTIssuer(JWTConfig{})
	assert.Error(t, err)

	issuer, err := NewJWTIssuer(JWTConfig{Secret: "s"})
	require.NoError(t, err)
	assert.Equal(t, defaultTokenTTL, issuer.ttl)

	_, err = issuer.Issue(domain.Principal{})
	assert.Error(t, err)
}
