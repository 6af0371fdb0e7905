// Package revocation provides TokenRevocationList implementations. Entries
// carry the remaining lifetime of the token they ban, so the list and the
// token expire together and the list stays bounded.
package revocation

import (
	"context"
	"sync"
	"time"
)

// InMemoryList keeps revocations in a map for tests and single-node dev.
// Expired entries are dropped lazily on read and on subsequent writes.
type InMemoryList struct {
	mu      sync.RWMutex
	revoked map[string]time.Time

	// now is injected for TTL tests; defaults to time.Now.
	now func() time.Time
}

// NewMemory constructs an empty in-memory revocation list.
func NewMemory() *InMemoryList {
	return &InMemoryList{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// WithClock overrides the list's time source. Test use only.
func (l *InMemoryList) WithClock(now func() time.Time) *InMemoryList {
	l.now = now
	return l
}

func (l *InMemoryList) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if token == "" || ttl <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	// Overwrite is fine: re-revoking is an idempotent success, and the
	// later entry can only extend the window up to the token's expiry.
	l.revoked[token] = l.now().Add(ttl)
	return nil
}

func (l *InMemoryList) IsRevoked(_ context.Context, token string) (bool, error) {
	l.mu.RLock()
	expiresAt, ok := l.revoked[token]
	l.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if l.now().After(expiresAt) {
		l.mu.Lock()
		delete(l.revoked, token)
		l.mu.Unlock()
		return false, nil
	}
	return true, nil
}
