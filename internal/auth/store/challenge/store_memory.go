// Package challenge provides ChallengeStore implementations. Overwrite
// semantics are the point of the contract: a new Put for the same email makes
// any previous attempt-id/code pair permanently unusable, and expired entries
// are indistinguishable from ones that never existed.
package challenge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"warden/internal/auth/models"
	"warden/pkg/domain"
	"warden/pkg/platform/sentinel"
)

type memoryEntry struct {
	challenge models.Challenge
	expiresAt time.Time
}

// InMemoryStore keeps pending challenges in a map for tests and dev.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[domain.Email]memoryEntry

	// now is injected for TTL tests; defaults to time.Now.
	now func() time.Time
}

// NewMemory constructs an empty in-memory challenge store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		entries: make(map[domain.Email]memoryEntry),
		now:     time.Now,
	}
}

// WithClock overrides the store's time source. Test use only.
func (s *InMemoryStore) WithClock(now func() time.Time) *InMemoryStore {
	s.now = now
	return s
}

func (s *InMemoryStore) Put(_ context.Context, email domain.Email, challenge models.Challenge, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = memoryEntry{
		challenge: challenge,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, email domain.Email) (models.Challenge, error) {
	s.mu.RLock()
	entry, ok := s.entries[email]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expiresAt) {
		return models.Challenge{}, fmt.Errorf("challenge for %s: %w", email, sentinel.ErrNotFound)
	}
	return entry.challenge, nil
}

func (s *InMemoryStore) Remove(_ context.Context, email domain.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}
