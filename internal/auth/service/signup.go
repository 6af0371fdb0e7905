package service

import (
	"context"
	"errors"

	"warden/internal/auth/models"
	"warden/pkg/domain"
	dErrors "warden/pkg/domain-errors"
	"warden/pkg/platform/sentinel"
)

// SignUp registers a new user record. Input syntax failures collapse to a
// single invalid-credentials class; a duplicate email is a conflict.
func (s *Service) SignUp(ctx context.Context, rawEmail, rawPassword string, requiresTwoFactor bool) error {
	email, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, msgInvalidCredentials)
	}
	password, err := domain.ParsePassword(rawPassword)
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, msgInvalidCredentials)
	}

	err = s.users.Add(ctx, models.NewUser(email, password, requiresTwoFactor))
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.New(dErrors.CodeConflict, "user already exists")
		}
		s.logger.ErrorContext(ctx, "failed to add user", "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	if s.metrics != nil {
		s.metrics.UsersCreated.Inc()
	}
	s.logger.InfoContext(ctx, "user created",
		"email", email.String(),
		"requires_2fa", requiresTwoFactor,
	)
	return nil
}
