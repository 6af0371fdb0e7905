package service

import (
	"context"
	"errors"

	"warden/internal/auth/models"
	"warden/internal/platform/metrics"
	"warden/pkg/domain"
	dErrors "warden/pkg/domain-errors"
	"warden/pkg/platform/sentinel"
)

// VerifyTwoFactor completes a challenged login. The supplied attempt id and
// code must both match the stored challenge exactly.
//
// A mismatch leaves the challenge in place so the caller may retry until the
// TTL runs out; only an exact match consumes it. Consumption before token
// issuance is what makes codes single-use: replaying the correct pair after
// success finds nothing and fails like any other bad attempt.
func (s *Service) VerifyTwoFactor(ctx context.Context, rawEmail, rawAttemptID, rawCode string) (*models.SessionResult, error) {
	email, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, msgInvalidCredentials)
	}
	attemptID, err := domain.ParseAttemptID(rawAttemptID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, msgInvalidCredentials)
	}
	code, err := domain.ParseOneTimeCode(rawCode)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, msgInvalidCredentials)
	}

	challenge, err := s.challenges.Get(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.countTwoFactor(metrics.OutcomeRejected)
			return nil, dErrors.New(dErrors.CodeUnauthorized, msgIncorrectCredentials)
		}
		s.countTwoFactor(metrics.OutcomeError)
		s.logger.ErrorContext(ctx, "failed to load challenge", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load challenge")
	}

	if !challenge.Matches(attemptID, code) {
		s.countTwoFactor(metrics.OutcomeRejected)
		s.logger.InfoContext(ctx, "challenge mismatch", "email", email.String())
		return nil, dErrors.New(dErrors.CodeUnauthorized, msgIncorrectCredentials)
	}

	if err := s.challenges.Remove(ctx, email); err != nil {
		s.countTwoFactor(metrics.OutcomeError)
		s.logger.ErrorContext(ctx, "failed to consume challenge", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to consume challenge")
	}

	issued, err := s.tokens.Issue(email)
	if err != nil {
		s.countTwoFactor(metrics.OutcomeError)
		s.logger.ErrorContext(ctx, "failed to issue session token", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.countTwoFactor(metrics.OutcomeSuccess)
	s.logger.InfoContext(ctx, "session established", "email", email.String())
	return &models.SessionResult{Token: issued}, nil
}
