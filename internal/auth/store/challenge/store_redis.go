package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"warden/internal/auth/models"
	"warden/pkg/domain"
	"warden/pkg/platform/sentinel"
)

const challengeKeyPrefix = "2fa:code:"

// redisChallenge is the stored JSON shape. The code is serialized here on
// purpose: Redis is the at-rest boundary for challenges, same as the user
// store is for password hashes.
type redisChallenge struct {
	AttemptID string `json:"attempt_id"`
	Code      string `json:"code"`
}

// RedisStore is the production challenge store. Redis key expiry implements
// the TTL contract; SET with expiry implements overwrite semantics.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed challenge store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(email domain.Email) string {
	return challengeKeyPrefix + email.String()
}

func (s *RedisStore) Put(ctx context.Context, email domain.Email, challenge models.Challenge, ttl time.Duration) error {
	payload, err := json.Marshal(redisChallenge{
		AttemptID: challenge.AttemptID.String(),
		Code:      challenge.Code.Expose(),
	})
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	if err := s.client.Set(ctx, key(email), payload, ttl).Err(); err != nil {
		return fmt.Errorf("set challenge: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, email domain.Email) (models.Challenge, error) {
	raw, err := s.client.Get(ctx, key(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Challenge{}, fmt.Errorf("challenge for %s: %w", email, sentinel.ErrNotFound)
	}
	if err != nil {
		return models.Challenge{}, fmt.Errorf("get challenge: %w", err)
	}

	var stored redisChallenge
	if err := json.Unmarshal(raw, &stored); err != nil {
		return models.Challenge{}, fmt.Errorf("unmarshal challenge: %w", err)
	}

	attemptID, err := domain.ParseAttemptID(stored.AttemptID)
	if err != nil {
		return models.Challenge{}, fmt.Errorf("stored attempt id invalid: %w", err)
	}
	code, err := domain.ParseOneTimeCode(stored.Code)
	if err != nil {
		return models.Challenge{}, fmt.Errorf("stored code invalid: %w", err)
	}

	return models.Challenge{AttemptID: attemptID, Code: code}, nil
}

func (s *RedisStore) Remove(ctx context.Context, email domain.Email) error {
	if err := s.client.Del(ctx, key(email)).Err(); err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	return nil
}
