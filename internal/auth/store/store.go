// Package store defines the persistence contracts the auth service depends
// on. Implementations live in subpackages (memory, Postgres, Redis) and are
// interchangeable as long as they honour the sentinel error contract:
// business outcomes are pkg/platform/sentinel errors (possibly wrapped),
// infrastructure failures are ordinary wrapped errors carrying the cause.
package store

import (
	"context"
	"time"

	"warden/internal/auth/models"
	"warden/pkg/domain"
)

// UserStore persists credential records keyed by email.
type UserStore interface {
	// Add persists a new user, hashing the password at rest. Returns
	// sentinel.ErrConflict when a record already exists for the email.
	Add(ctx context.Context, user models.User) error

	// Get returns the record for email, or sentinel.ErrNotFound. The
	// returned record never carries password material.
	Get(ctx context.Context, email domain.Email) (models.User, error)

	// ValidateCredentials verifies password against the stored hash in
	// constant time. Returns sentinel.ErrNotFound for unknown emails and
	// sentinel.ErrInvalidCredentials on mismatch. Kept separate from Get
	// so callers can authenticate without ever seeing the hash.
	ValidateCredentials(ctx context.Context, email domain.Email, password domain.Password) error
}

// TokenRevocationList records tokens that must be rejected even while
// cryptographically valid. Entries expire with the token they ban, so the
// list never accumulates dead entries.
type TokenRevocationList interface {
	// Revoke marks token revoked for ttl. Revoking an already-revoked
	// token is a no-op success.
	Revoke(ctx context.Context, token string, ttl time.Duration) error

	// IsRevoked reports whether token is currently revoked. An
	// infrastructure failure surfaces as a non-nil error and must never
	// be read as "not revoked".
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// ChallengeStore holds at most one pending second-factor challenge per
// email. Entries past their TTL are indistinguishable from absent ones.
type ChallengeStore interface {
	// Put stores the challenge for email with ttl, unconditionally
	// superseding any existing entry.
	Put(ctx context.Context, email domain.Email, challenge models.Challenge, ttl time.Duration) error

	// Get returns the current challenge, or sentinel.ErrNotFound when
	// none exists or it expired.
	Get(ctx context.Context, email domain.Email) (models.Challenge, error)

	// Remove deletes the challenge if present; removing an absent entry
	// is not an error.
	Remove(ctx context.Context, email domain.Email) error
}
