// Package token issues and validates the signed session tokens. Tokens are
// HS256 JWTs carrying subject (email) and expiry; nothing else. Statelessness
// is what makes the revocation list necessary: logout cannot un-sign a token,
// only deny it.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"warden/internal/auth/store"
	"warden/pkg/domain"
)

// TTL is how long an issued session token stays valid.
const TTL = 10 * time.Minute

var (
	// ErrRevoked means the token is on the revocation list.
	ErrRevoked = errors.New("token revoked")
	// ErrMalformed means the token's structure or signature is invalid.
	ErrMalformed = errors.New("token malformed")
	// ErrExpired means the token is past its expiry.
	ErrExpired = errors.New("token expired")
)

// Claims are the decoded contents of a valid session token.
type Claims struct {
	Subject   domain.Email
	ExpiresAt time.Time
}

// RemainingTTL is the token's unexpired window at now. Revocation entries
// use this so they die together with the token.
func (c Claims) RemainingTTL(now time.Time) time.Duration {
	return c.ExpiresAt.Sub(now)
}

// Service signs and validates session tokens with a shared HMAC secret.
type Service struct {
	secret []byte
	ttl    time.Duration

	// now is injected for expiry tests; defaults to time.Now.
	now func() time.Time
}

// New constructs a token service. The secret must be non-empty; it is the
// root of trust for every session.
func New(secret domain.Secret, ttl time.Duration) (*Service, error) {
	if secret.IsZero() {
		return nil, errors.New("token: signing secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token: ttl must be positive")
	}
	return &Service{
		secret: []byte(secret.Expose()),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock overrides the service's time source. Test use only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Issue signs a fresh token asserting email until now+ttl.
func (s *Service) Issue(email domain.Email) (domain.Secret, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   email.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return domain.Secret{}, fmt.Errorf("sign token: %w", err)
	}
	return domain.NewSecret(signed), nil
}

// Validate checks raw against the revocation list, then signature and
// structure, then expiry, in that order. A revoked token is rejected before
// any cryptographic work so the rejection reason stays observable even for
// tokens that would also fail decoding. An infrastructure failure from the
// list propagates; it is never read as "not revoked".
func (s *Service) Validate(ctx context.Context, raw string, trl store.TokenRevocationList) (Claims, error) {
	revoked, err := trl.IsRevoked(ctx, raw)
	if err != nil {
		return Claims{}, fmt.Errorf("consult revocation list: %w", err)
	}
	if revoked {
		return Claims{}, ErrRevoked
	}

	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	registered, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || registered.Subject == "" || registered.ExpiresAt == nil {
		return Claims{}, ErrMalformed
	}

	subject, err := domain.ParseEmail(registered.Subject)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: bad subject", ErrMalformed)
	}

	return Claims{
		Subject:   subject,
		ExpiresAt: registered.ExpiresAt.Time,
	}, nil
}
