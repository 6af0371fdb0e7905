package domain

import "log/slog"

// Redacted replaces secret material in every rendered form of a Secret.
const Redacted = "[REDACTED]"

// Secret wraps a string that must never appear in logs, error messages, or
// serialized payloads. fmt, slog, and encoding/json all see the redaction
// marker; reading the real value requires an explicit Expose call.
type Secret struct {
	value string
}

// NewSecret wraps raw secret material.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// Expose returns the wrapped value. Call sites are the audit surface for
// secret use, so keep them few.
func (s Secret) Expose() string {
	return s.value
}

// Equal compares two secrets by value without exposing either.
func (s Secret) Equal(other Secret) bool {
	return s.value == other.value
}

// IsZero reports whether the secret is empty.
func (s Secret) IsZero() bool {
	return s.value == ""
}

func (s Secret) String() string {
	return Redacted
}

// GoString keeps %#v from leaking the value.
func (s Secret) GoString() string {
	return "domain.Secret{" + Redacted + "}"
}

// LogValue implements slog.LogValuer so structured logs redact automatically.
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(Redacted)
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + Redacted + `"`), nil
}
