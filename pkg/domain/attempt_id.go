package domain

import (
	"github.com/google/uuid"

	dErrors "warden/pkg/domain-errors"
)

// AttemptID correlates a login's second-factor challenge with its eventual
// verification call. Generated server-side on challenge issuance; clients
// echo it back, so the echoed form must round-trip through ParseAttemptID.
type AttemptID string

// NewAttemptID generates a fresh random attempt ID. Always parseable.
func NewAttemptID() AttemptID {
	return AttemptID(uuid.NewString())
}

// ParseAttemptID validates UUID syntax on a client-supplied attempt ID.
func ParseAttemptID(raw string) (AttemptID, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid login attempt id")
	}
	return AttemptID(parsed.String()), nil
}

func (a AttemptID) String() string {
	return string(a)
}
