package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryList(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked tokens read as revoked", func(t *testing.T) {
		list := NewMemory()
		require.NoError(t, list.Revoke(ctx, "token-a", 10*time.Minute))

		revoked, err := list.IsRevoked(ctx, "token-a")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("unknown tokens read as not revoked", func(t *testing.T) {
		list := NewMemory()
		revoked, err := list.IsRevoked(ctx, "never-seen")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("re-revoking is an idempotent success", func(t *testing.T) {
		list := NewMemory()
		require.NoError(t, list.Revoke(ctx, "token-a", 10*time.Minute))
		require.NoError(t, list.Revoke(ctx, "token-a", 5*time.Minute))

		revoked, err := list.IsRevoked(ctx, "token-a")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("entries expire with their ttl", func(t *testing.T) {
		clock := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
		list := NewMemory().WithClock(func() time.Time { return clock })
		require.NoError(t, list.Revoke(ctx, "token-a", time.Minute))

		clock = clock.Add(time.Minute + time.Second)
		revoked, err := list.IsRevoked(ctx, "token-a")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("empty token and non-positive ttl are no-ops", func(t *testing.T) {
		list := NewMemory()
		require.NoError(t, list.Revoke(ctx, "", 10*time.Minute))
		require.NoError(t, list.Revoke(ctx, "token-a", 0))

		revoked, err := list.IsRevoked(ctx, "token-a")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
