package domain

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"

	dErrors "warden/pkg/domain-errors"
)

const oneTimeCodeLength = 6

// OneTimeCode is the second-factor code delivered out-of-band: exactly six
// ASCII digits. It wraps the digits as a Secret so a challenge can be logged
// without leaking the code.
type OneTimeCode struct {
	secret Secret
}

// NewOneTimeCode draws a code uniformly from 000000-999999 using crypto/rand.
func NewOneTimeCode() OneTimeCode {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		// crypto/rand failure means the process has no usable entropy
		// source; nothing sensible can continue from here.
		panic(fmt.Sprintf("domain: crypto/rand unavailable: %v", err))
	}
	return OneTimeCode{secret: NewSecret(fmt.Sprintf("%06d", n.Int64()))}
}

// ParseOneTimeCode validates a client-supplied code.
func ParseOneTimeCode(raw string) (OneTimeCode, error) {
	if len(raw) != oneTimeCodeLength {
		return OneTimeCode{}, dErrors.New(dErrors.CodeInvalidInput, "invalid one-time code")
	}
	for _, c := range []byte(raw) {
		if c < '0' || c > '9' {
			return OneTimeCode{}, dErrors.New(dErrors.CodeInvalidInput, "invalid one-time code")
		}
	}
	return OneTimeCode{secret: NewSecret(raw)}, nil
}

// Equal compares codes by value without exposing either.
func (c OneTimeCode) Equal(other OneTimeCode) bool {
	return c.secret.Equal(other.secret)
}

// Expose returns the digits for delivery to the user or storage.
func (c OneTimeCode) Expose() string {
	return c.secret.Expose()
}

func (c OneTimeCode) String() string {
	return Redacted
}

func (c OneTimeCode) LogValue() slog.Value {
	return slog.StringValue(Redacted)
}
