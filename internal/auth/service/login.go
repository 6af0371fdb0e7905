package service

import (
	"context"
	"errors"
	"fmt"

	"warden/internal/auth/models"
	"warden/internal/platform/metrics"
	"warden/pkg/domain"
	dErrors "warden/pkg/domain-errors"
	"warden/pkg/platform/sentinel"
)

// Login runs the credential check and decides between direct authentication
// and a second-factor challenge.
//
// Unknown-user and wrong-password outcomes are indistinguishable to the
// caller: both reject with the same incorrect-credentials class so account
// existence cannot be probed.
func (s *Service) Login(ctx context.Context, rawEmail, rawPassword string) (*models.LoginResult, error) {
	email, err := domain.ParseEmail(rawEmail)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, msgInvalidCredentials)
	}
	password, err := domain.ParsePassword(rawPassword)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, msgInvalidCredentials)
	}

	err = s.users.ValidateCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) || errors.Is(err, sentinel.ErrInvalidCredentials) {
			s.countLogin(metrics.OutcomeRejected)
			return nil, dErrors.New(dErrors.CodeUnauthorized, msgIncorrectCredentials)
		}
		s.countLogin(metrics.OutcomeError)
		s.logger.ErrorContext(ctx, "credential validation failed", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to validate credentials")
	}

	user, err := s.users.Get(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// The record vanished between validate and get; to the
			// caller that is still just a failed login.
			s.countLogin(metrics.OutcomeRejected)
			return nil, dErrors.New(dErrors.CodeUnauthorized, msgIncorrectCredentials)
		}
		s.countLogin(metrics.OutcomeError)
		s.logger.ErrorContext(ctx, "failed to load user record", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}

	if !user.RequiresTwoFactor {
		issued, err := s.tokens.Issue(email)
		if err != nil {
			s.countLogin(metrics.OutcomeError)
			s.logger.ErrorContext(ctx, "failed to issue session token", "error", err)
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
		}
		s.countLogin(metrics.OutcomeSuccess)
		s.logger.InfoContext(ctx, "login authenticated", "email", email.String())
		return &models.LoginResult{
			Outcome: models.OutcomeAuthenticated,
			Token:   issued,
		}, nil
	}

	return s.issueChallenge(ctx, email)
}

// issueChallenge persists a fresh challenge (superseding any outstanding one
// for this user, which is what invalidates an earlier un-verified login
// attempt) and dispatches the code out-of-band.
func (s *Service) issueChallenge(ctx context.Context, email domain.Email) (*models.LoginResult, error) {
	challenge := models.Challenge{
		AttemptID: domain.NewAttemptID(),
		Code:      domain.NewOneTimeCode(),
	}

	if err := s.challenges.Put(ctx, email, challenge, s.challengeTTL); err != nil {
		s.countLogin(metrics.OutcomeError)
		s.logger.ErrorContext(ctx, "failed to store challenge", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store challenge")
	}

	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
		challenge.Code.Expose(), int(s.challengeTTL.Minutes()))
	if err := s.sender.Send(ctx, email, "Your login verification code", body); err != nil {
		// The challenge stays persisted and usable; the user just never
		// received the code. No rollback, no automatic retry.
		s.countLogin(metrics.OutcomeError)
		s.logger.ErrorContext(ctx, "failed to send challenge code", "error", err, "email", email.String())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to send verification code")
	}

	s.countLogin(metrics.OutcomeChallenge)
	s.logger.InfoContext(ctx, "challenge issued",
		"email", email.String(),
		"attempt_id", challenge.AttemptID.String(),
	)
	return &models.LoginResult{
		Outcome:   models.OutcomeChallengeIssued,
		AttemptID: challenge.AttemptID,
	}, nil
}
