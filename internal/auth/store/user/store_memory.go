// Package user provides UserStore implementations. Both back the same
// contract: passwords are argon2id-hashed before persistence and verified in
// constant time, and the raw hash never leaves the store.
package user

import (
	"context"
	"fmt"
	"sync"

	"warden/internal/auth/models"
	"warden/internal/password"
	"warden/pkg/domain"
	"warden/pkg/platform/sentinel"
)

type memoryRecord struct {
	passwordHash      string
	requiresTwoFactor bool
}

// InMemoryStore keeps user records in a map for tests and single-node dev.
type InMemoryStore struct {
	mu     sync.RWMutex
	hasher *password.Hasher
	users  map[domain.Email]memoryRecord
}

// NewMemory constructs an empty in-memory user store.
func NewMemory(hasher *password.Hasher) *InMemoryStore {
	return &InMemoryStore{
		hasher: hasher,
		users:  make(map[domain.Email]memoryRecord),
	}
}

func (s *InMemoryStore) Add(ctx context.Context, user models.User) error {
	// Hash outside the lock; argon2id is deliberately slow.
	hash, err := s.hasher.Hash(ctx, user.Password.Expose())
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Email]; exists {
		return fmt.Errorf("user %s: %w", user.Email, sentinel.ErrConflict)
	}
	s.users[user.Email] = memoryRecord{
		passwordHash:      hash,
		requiresTwoFactor: user.RequiresTwoFactor,
	}
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, email domain.Email) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.users[email]
	if !ok {
		return models.User{}, fmt.Errorf("user %s: %w", email, sentinel.ErrNotFound)
	}
	return models.User{
		Email:             email,
		RequiresTwoFactor: record.requiresTwoFactor,
	}, nil
}

func (s *InMemoryStore) ValidateCredentials(ctx context.Context, email domain.Email, pw domain.Password) error {
	s.mu.RLock()
	record, ok := s.users[email]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("user %s: %w", email, sentinel.ErrNotFound)
	}

	ok, err := s.hasher.Verify(ctx, pw.Expose(), record.passwordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return sentinel.ErrInvalidCredentials
	}
	return nil
}
