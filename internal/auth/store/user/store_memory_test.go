package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"warden/internal/auth/models"
	"warden/internal/password"
	"warden/pkg/domain"
	"warden/pkg/platform/sentinel"
)

type InMemoryUserStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func (s *InMemoryUserStoreSuite) SetupTest() {
	hasher := password.New(password.Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	s.store = NewMemory(hasher)
	s.ctx = context.Background()
}

func TestInMemoryUserStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryUserStoreSuite))
}

func (s *InMemoryUserStoreSuite) mustUser(email, pw string, twoFactor bool) models.User {
	parsedEmail, err := domain.ParseEmail(email)
	s.Require().NoError(err)
	parsedPassword, err := domain.ParsePassword(pw)
	s.Require().NoError(err)
	return models.NewUser(parsedEmail, parsedPassword, twoFactor)
}

func (s *InMemoryUserStoreSuite) TestAdd() {
	s.Run("persists a new user", func() {
		user := s.mustUser("a@example.com", "password1", false)
		s.Require().NoError(s.store.Add(s.ctx, user))

		got, err := s.store.Get(s.ctx, user.Email)
		s.Require().NoError(err)
		s.Equal(user.Email, got.Email)
		s.False(got.RequiresTwoFactor)
	})

	s.Run("returns ErrConflict for a duplicate email regardless of password", func() {
		user := s.mustUser("dup@example.com", "password1", false)
		s.Require().NoError(s.store.Add(s.ctx, user))

		again := s.mustUser("dup@example.com", "different-password", true)
		err := s.store.Add(s.ctx, again)
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})
}

func (s *InMemoryUserStoreSuite) TestGet() {
	s.Run("returns ErrNotFound for unknown email", func() {
		email, err := domain.ParseEmail("missing@example.com")
		s.Require().NoError(err)
		_, err = s.store.Get(s.ctx, email)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("never returns password material", func() {
		user := s.mustUser("nohash@example.com", "password1", true)
		s.Require().NoError(s.store.Add(s.ctx, user))

		got, err := s.store.Get(s.ctx, user.Email)
		s.Require().NoError(err)
		s.Empty(got.Password.Expose())
		s.True(got.RequiresTwoFactor)
	})
}

func (s *InMemoryUserStoreSuite) TestValidateCredentials() {
	s.Run("succeeds for the right password", func() {
		user := s.mustUser("v@example.com", "password1", false)
		s.Require().NoError(s.store.Add(s.ctx, user))

		pw, err := domain.ParsePassword("password1")
		s.Require().NoError(err)
		s.Require().NoError(s.store.ValidateCredentials(s.ctx, user.Email, pw))
	})

	s.Run("returns ErrInvalidCredentials for the wrong password", func() {
		user := s.mustUser("w@example.com", "password1", false)
		s.Require().NoError(s.store.Add(s.ctx, user))

		pw, err := domain.ParsePassword("password2")
		s.Require().NoError(err)
		err = s.store.ValidateCredentials(s.ctx, user.Email, pw)
		s.Require().ErrorIs(err, sentinel.ErrInvalidCredentials)
	})

	s.Run("returns ErrNotFound for an unknown user", func() {
		email, err := domain.ParseEmail("ghost@example.com")
		s.Require().NoError(err)
		pw, err := domain.ParsePassword("password1")
		s.Require().NoError(err)
		err = s.store.ValidateCredentials(s.ctx, email, pw)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
