package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ebank/backoffice/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// JWTConfig holds the signing parameters of issued tokens.
type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type tokenClaims struct {
	Role   string `json:"role"`
	UserID string `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 tokens whose subject is the user's login.
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(cfg JWTConfig) (*JWTIssuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTIssuer{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue mints a token bound to principal.Login that expires after the configured TTL.
func (s *JWTIssuer) Issue(principal domain.Principal) (string, error) {
	if principal.Login == "" {
		return "", errors.New("issue token: empty subject")
	}

	now := s.now()
	claims := tokenClaims{
		Role:   principal.Role.String(),
		UserID: principal.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Login,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, issuer and expiry and returns the bound principal.
// Every failure is reported as domain.ErrInvalidToken.
func (s *JWTIssuer) Parse(token string) (domain.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return domain.Principal{}, domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	return domain.Principal{
		UserID: claims.UserID,
		Login:  claims.Subject,
		Role:   domain.RoleName(claims.Role),
	}, nil
}
