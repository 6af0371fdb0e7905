package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"warden/internal/auth/models"
	"warden/internal/password"
	"warden/pkg/domain"
	"warden/pkg/platform/sentinel"
)

// PostgresStore persists user records in PostgreSQL. The store is pure I/O
// plus hashing; the unique constraint on email enforces one record per
// address.
//
// Schema:
//
//	CREATE TABLE users (
//	    email         TEXT PRIMARY KEY,
//	    password_hash TEXT NOT NULL,
//	    requires_2fa  BOOLEAN NOT NULL DEFAULT FALSE
//	);
type PostgresStore struct {
	pool   *pgxpool.Pool
	hasher *password.Hasher
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(pool *pgxpool.Pool, hasher *password.Hasher) *PostgresStore {
	return &PostgresStore{pool: pool, hasher: hasher}
}

func (s *PostgresStore) Add(ctx context.Context, user models.User) error {
	hash, err := s.hasher.Hash(ctx, user.Password.Expose())
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO users (email, password_hash, requires_2fa) VALUES ($1, $2, $3)`,
		user.Email.String(), hash, user.RequiresTwoFactor,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("user %s: %w", user.Email, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, email domain.Email) (models.User, error) {
	var requiresTwoFactor bool
	err := s.pool.QueryRow(ctx,
		`SELECT requires_2fa FROM users WHERE email = $1`,
		email.String(),
	).Scan(&requiresTwoFactor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, fmt.Errorf("user %s: %w", email, sentinel.ErrNotFound)
		}
		return models.User{}, fmt.Errorf("query user: %w", err)
	}
	return models.User{
		Email:             email,
		RequiresTwoFactor: requiresTwoFactor,
	}, nil
}

func (s *PostgresStore) ValidateCredentials(ctx context.Context, email domain.Email, pw domain.Password) error {
	var hash string
	err := s.pool.QueryRow(ctx,
		`SELECT password_hash FROM users WHERE email = $1`,
		email.String(),
	).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("user %s: %w", email, sentinel.ErrNotFound)
		}
		return fmt.Errorf("query password hash: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, pw.Expose(), hash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return sentinel.ErrInvalidCredentials
	}
	return nil
}
