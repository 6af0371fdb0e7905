package domain

import (
	"log/slog"
	"unicode/utf8"

	dErrors "warden/pkg/domain-errors"
)

// Password length bounds, inclusive, counted in runes.
const (
	PasswordMinLength = 8
	PasswordMaxLength = 64
)

// Password is a length-validated credential. It rides on Secret so the raw
// value never reaches logs or serialized output; only the user store exposes
// it, and only to hash or verify it.
type Password struct {
	secret Secret
}

// ParsePassword validates the length bounds. Anything else about the
// password's content is deliberately not policed here.
func ParsePassword(raw string) (Password, error) {
	n := utf8.RuneCountInString(raw)
	if n < PasswordMinLength || n > PasswordMaxLength {
		return Password{}, dErrors.New(dErrors.CodeInvalidInput, "password must be between 8 and 64 characters")
	}
	return Password{secret: NewSecret(raw)}, nil
}

// Expose returns the raw password for hashing or verification.
func (p Password) Expose() string {
	return p.secret.Expose()
}

func (p Password) String() string {
	return Redacted
}

// LogValue keeps structured logs clean even when a Password is logged directly.
func (p Password) LogValue() slog.Value {
	return slog.StringValue(Redacted)
}
