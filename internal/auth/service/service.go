// Package service orchestrates the credential and session lifecycle: signup,
// the login state machine, second-factor verification, and logout. It owns no
// persistent state; everything durable lives behind the store contracts.
//
// Error policy: input syntax failures and authentication failures are
// collapsed into coarse caller-visible classes ("invalid credentials",
// "incorrect credentials", "invalid token") so account existence and failure
// cause never leak. Infrastructure failures propagate as internal errors and
// are never read as an authentication verdict.
package service

import (
	"log/slog"
	"time"

	"warden/internal/auth/store"
	"warden/internal/auth/token"
	"warden/internal/email"
	"warden/internal/platform/metrics"
)

// ChallengeTTL is how long a pending second-factor challenge stays valid.
const ChallengeTTL = 10 * time.Minute

// Caller-safe messages for the collapsed error classes.
const (
	msgInvalidCredentials   = "invalid credentials"
	msgIncorrectCredentials = "incorrect credentials"
	msgInvalidToken         = "invalid token"
	msgMissingToken         = "missing token"
)

// Deps are the collaborators the service orchestrates. All fields except
// Metrics are required.
type Deps struct {
	Users      store.UserStore
	Challenges store.ChallengeStore
	Revoked    store.TokenRevocationList
	Tokens     *token.Service
	Sender     email.Sender
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}

// Service is the auth core. Safe for concurrent use; each call runs
// independently and relies on the stores' own synchronization.
type Service struct {
	users      store.UserStore
	challenges store.ChallengeStore
	revoked    store.TokenRevocationList
	tokens     *token.Service
	sender     email.Sender
	logger     *slog.Logger
	metrics    *metrics.Metrics

	challengeTTL time.Duration

	// now is injected for TTL tests; defaults to time.Now.
	now func() time.Time
}

// New constructs the auth service.
func New(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:        deps.Users,
		challenges:   deps.Challenges,
		revoked:      deps.Revoked,
		tokens:       deps.Tokens,
		sender:       deps.Sender,
		logger:       logger,
		metrics:      deps.Metrics,
		challengeTTL: ChallengeTTL,
		now:          time.Now,
	}
}

// WithClock overrides the service's time source. Test use only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) countLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.Logins.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) countTwoFactor(outcome string) {
	if s.metrics != nil {
		s.metrics.TwoFactorChecks.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) countValidation(outcome string) {
	if s.metrics != nil {
		s.metrics.TokenValidations.WithLabelValues(outcome).Inc()
	}
}
