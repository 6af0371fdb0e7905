// Package domain holds the validated value types the auth service is built
// on. Construction through the Parse functions is the only gate for their
// invariants; once a value exists it is known good.
package domain

import (
	"strings"

	"github.com/asaskevich/govalidator"

	dErrors "warden/pkg/domain-errors"
)

// Email is a validated, normalized email address. It is the primary key for
// user records; equality is plain string equality on the normalized form.
type Email string

// ParseEmail validates raw against the standard email grammar and normalizes
// it (trimmed, lowercased) so lookups are canonical.
func ParseEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if !govalidator.IsEmail(normalized) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid email address")
	}
	return Email(normalized), nil
}

func (e Email) String() string {
	return string(e)
}
