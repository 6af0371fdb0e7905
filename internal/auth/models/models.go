// Package models holds the auth domain records and the request/result shapes
// exchanged between the transport layer and the auth service.
package models

import (
	"warden/pkg/domain"
)

// User is the credential record tracked per email address. Records are
// immutable after signup; the password reaches the user store once, which
// hashes it before persistence.
type User struct {
	Email             domain.Email
	Password          domain.Password
	RequiresTwoFactor bool
}

// NewUser builds a user record from already-validated value types.
func NewUser(email domain.Email, password domain.Password, requiresTwoFactor bool) User {
	return User{
		Email:             email,
		Password:          password,
		RequiresTwoFactor: requiresTwoFactor,
	}
}

// Challenge is a pending second-factor challenge: the attempt ID handed back
// to the caller and the one-time code delivered out-of-band. At most one
// exists per email; a newer challenge supersedes it entirely.
type Challenge struct {
	AttemptID domain.AttemptID
	Code      domain.OneTimeCode
}

// Matches reports structural equality with a caller-supplied pair. Both
// fields must match; the comparison never exposes the stored code.
func (c Challenge) Matches(attemptID domain.AttemptID, code domain.OneTimeCode) bool {
	return c.AttemptID == attemptID && c.Code.Equal(code)
}

// LoginOutcome distinguishes the two successful login terminals.
type LoginOutcome string

const (
	// OutcomeAuthenticated means credentials sufficed and a session token
	// was issued directly.
	OutcomeAuthenticated LoginOutcome = "authenticated"
	// OutcomeChallengeIssued means a second-factor challenge was created
	// and its code dispatched; the session is not established yet.
	OutcomeChallengeIssued LoginOutcome = "challenge_issued"
)

// LoginResult is the terminal state of a successful login call. Token is set
// only for OutcomeAuthenticated; AttemptID only for OutcomeChallengeIssued.
type LoginResult struct {
	Outcome   LoginOutcome
	Token     domain.Secret
	AttemptID domain.AttemptID
}

// SessionResult is the terminal state of a successful second-factor
// verification: an established session token.
type SessionResult struct {
	Token domain.Secret
}
