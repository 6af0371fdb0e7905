// Package metrics registers the service's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application-level counters. Construct once per process;
// promauto registers against the default registry.
type Metrics struct {
	UsersCreated     prometheus.Counter
	Logins           *prometheus.CounterVec
	TwoFactorChecks  *prometheus.CounterVec
	TokensRevoked    prometheus.Counter
	TokenValidations *prometheus.CounterVec
}

// New creates and registers all application metrics.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warden_users_created_total",
			Help: "Total number of users registered",
		}),
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "warden_logins_total",
			Help: "Login attempts by terminal outcome",
		}, []string{"outcome"}),
		TwoFactorChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "warden_two_factor_verifications_total",
			Help: "Second-factor verification attempts by outcome",
		}, []string{"outcome"}),
		TokensRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warden_tokens_revoked_total",
			Help: "Tokens added to the revocation list via logout",
		}),
		TokenValidations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "warden_token_validations_total",
			Help: "Token validation calls by outcome",
		}, []string{"outcome"}),
	}
}

// Outcome label values. Failure reasons are deliberately coarse so the
// metrics cannot become an oracle for credential probing.
const (
	OutcomeSuccess   = "success"
	OutcomeChallenge = "challenge_issued"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
)
