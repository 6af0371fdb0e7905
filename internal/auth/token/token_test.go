package token

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/auth/store/revocation"
	"warden/pkg/domain"
)

func newService(t *testing.T) *Service {
	t.Helper()
	svc, err := New(domain.NewSecret("test-signing-secret"), TTL)
	require.NoError(t, err)
	return svc
}

func mustEmail(t *testing.T, raw string) domain.Email {
	t.Helper()
	email, err := domain.ParseEmail(raw)
	require.NoError(t, err)
	return email
}

func TestNew(t *testing.T) {
	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := New(domain.Secret{}, TTL)
		require.Error(t, err)
	})

	t.Run("rejects non-positive ttl", func(t *testing.T) {
		_, err := New(domain.NewSecret("secret"), 0)
		require.Error(t, err)
	})
}

func TestIssueAndValidate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	trl := revocation.NewMemory()
	email := mustEmail(t, "user@example.com")

	t.Run("issued token validates with its subject", func(t *testing.T) {
		issued, err := svc.Issue(email)
		require.NoError(t, err)
		assert.Equal(t, 3, len(strings.Split(issued.Expose(), ".")), "JWT must be three dot-separated parts")

		claims, err := svc.Validate(ctx, issued.Expose(), trl)
		require.NoError(t, err)
		assert.Equal(t, email, claims.Subject)
		assert.InDelta(t, TTL.Seconds(), claims.RemainingTTL(time.Now()).Seconds(), 5)
	})

	t.Run("garbage is malformed", func(t *testing.T) {
		_, err := svc.Validate(ctx, "not-a-token", trl)
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("token signed with a different secret is malformed", func(t *testing.T) {
		other, err := New(domain.NewSecret("other-secret"), TTL)
		require.NoError(t, err)
		issued, err := other.Issue(email)
		require.NoError(t, err)

		_, err = svc.Validate(ctx, issued.Expose(), trl)
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		clock := time.Now()
		frozen := newService(t).WithClock(func() time.Time { return clock })

		issued, err := frozen.Issue(email)
		require.NoError(t, err)

		clock = clock.Add(TTL + time.Second)
		_, err = frozen.Validate(ctx, issued.Expose(), trl)
		require.ErrorIs(t, err, ErrExpired)
	})

	t.Run("revoked token is rejected before decoding", func(t *testing.T) {
		issued, err := svc.Issue(email)
		require.NoError(t, err)
		require.NoError(t, trl.Revoke(ctx, issued.Expose(), TTL))

		_, err = svc.Validate(ctx, issued.Expose(), trl)
		require.ErrorIs(t, err, ErrRevoked)

		// Even a syntactically invalid revoked token reports revocation.
		require.NoError(t, trl.Revoke(ctx, "revoked-garbage", TTL))
		_, err = svc.Validate(ctx, "revoked-garbage", trl)
		require.ErrorIs(t, err, ErrRevoked)
	})

	t.Run("revocation list failure propagates", func(t *testing.T) {
		issued, err := svc.Issue(email)
		require.NoError(t, err)

		_, err = svc.Validate(ctx, issued.Expose(), failingTRL{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrMalformed)
		assert.NotErrorIs(t, err, ErrRevoked)
	})
}

type failingTRL struct{}

func (failingTRL) Revoke(context.Context, string, time.Duration) error {
	return assert.AnError
}

func (failingTRL) IsRevoked(context.Context, string) (bool, error) {
	return false, assert.AnError
}
