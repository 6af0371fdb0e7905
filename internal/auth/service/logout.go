package service

import (
	"context"
	"errors"

	"warden/internal/auth/token"
	"warden/internal/platform/metrics"
	"warden/pkg/domain"
	dErrors "warden/pkg/domain-errors"
)

// Logout revokes a presented session token. The revocation entry lives only
// as long as the token would have: a token one minute from expiry gets a
// one-minute ledger entry, not a fresh full TTL.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return dErrors.New(dErrors.CodeBadRequest, msgMissingToken)
	}

	claims, err := s.tokens.Validate(ctx, rawToken, s.revoked)
	if err != nil {
		if isTokenRejection(err) {
			return dErrors.New(dErrors.CodeUnauthorized, msgInvalidToken)
		}
		s.logger.ErrorContext(ctx, "token validation failed during logout", "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to validate token")
	}

	ttl := claims.RemainingTTL(s.now())
	if err := s.revoked.Revoke(ctx, rawToken, ttl); err != nil {
		s.logger.ErrorContext(ctx, "failed to revoke token", "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token")
	}

	if s.metrics != nil {
		s.metrics.TokensRevoked.Inc()
	}
	s.logger.InfoContext(ctx, "token revoked", "email", claims.Subject.String())
	return nil
}

// ValidateToken checks a presented token and returns its subject. Rejection
// reasons stay internal; callers see one invalid-token class.
func (s *Service) ValidateToken(ctx context.Context, rawToken string) (domain.Email, error) {
	if rawToken == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, msgMissingToken)
	}

	claims, err := s.tokens.Validate(ctx, rawToken, s.revoked)
	if err != nil {
		if isTokenRejection(err) {
			s.countValidation(metrics.OutcomeRejected)
			return "", dErrors.New(dErrors.CodeUnauthorized, msgInvalidToken)
		}
		s.countValidation(metrics.OutcomeError)
		s.logger.ErrorContext(ctx, "token validation failed", "error", err)
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to validate token")
	}

	s.countValidation(metrics.OutcomeSuccess)
	return claims.Subject, nil
}

// isTokenRejection distinguishes a verdict about the token from an
// infrastructure failure while reaching one.
func isTokenRejection(err error) bool {
	return errors.Is(err, token.ErrRevoked) ||
		errors.Is(err, token.ErrMalformed) ||
		errors.Is(err, token.ErrExpired)
}
