package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "warden/pkg/domain-errors"
)

func TestParseEmail(t *testing.T) {
	t.Run("accepts valid addresses", func(t *testing.T) {
		for _, raw := range []string{
			"user@example.com",
			"first.last@example.co.uk",
			"user+tag@example.com",
		} {
			email, err := ParseEmail(raw)
			require.NoError(t, err, "input: %s", raw)
			assert.Equal(t, raw, email.String())
		}
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		email, err := ParseEmail("  User@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", email.String())
	})

	t.Run("rejects invalid addresses", func(t *testing.T) {
		for _, raw := range []string{"", "no-at-sign", "@example.com", "user@", "user @example.com"} {
			_, err := ParseEmail(raw)
			require.Error(t, err, "input: %q", raw)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})
}

func TestParsePassword(t *testing.T) {
	t.Run("accepts lengths 8 through 64", func(t *testing.T) {
		for _, n := range []int{8, 9, 32, 63, 64} {
			raw := strings.Repeat("a", n)
			pw, err := ParsePassword(raw)
			require.NoError(t, err, "length %d", n)
			assert.Equal(t, raw, pw.Expose())
		}
	})

	t.Run("rejects lengths outside bounds", func(t *testing.T) {
		for _, n := range []int{0, 1, 7, 65, 100} {
			_, err := ParsePassword(strings.Repeat("a", n))
			require.Error(t, err, "length %d", n)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		_, err := ParsePassword(strings.Repeat("ü", 8))
		require.NoError(t, err)
	})

	t.Run("never prints its value", func(t *testing.T) {
		pw, err := ParsePassword("password1")
		require.NoError(t, err)
		assert.Equal(t, Redacted, pw.String())
		assert.Equal(t, Redacted, fmt.Sprintf("%v", pw))
		assert.NotContains(t, fmt.Sprintf("%+v", pw), "password1")
	})
}

func TestAttemptID(t *testing.T) {
	t.Run("generated IDs round-trip", func(t *testing.T) {
		id := NewAttemptID()
		parsed, err := ParseAttemptID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	})

	t.Run("generated IDs are unique", func(t *testing.T) {
		assert.NotEqual(t, NewAttemptID(), NewAttemptID())
	})

	t.Run("parse accepts canonical UUIDs", func(t *testing.T) {
		raw := uuid.NewString()
		id, err := ParseAttemptID(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
	})

	t.Run("parse rejects non-UUID input", func(t *testing.T) {
		for _, raw := range []string{"", "not-a-uuid", "23f6b037-0ea5-4404-a712"} {
			_, err := ParseAttemptID(raw)
			require.Error(t, err, "input: %q", raw)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})
}

func TestOneTimeCode(t *testing.T) {
	t.Run("generated codes are six digits", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			code := NewOneTimeCode()
			raw := code.Expose()
			require.Len(t, raw, 6)
			_, err := ParseOneTimeCode(raw)
			require.NoError(t, err)
		}
	})

	t.Run("parse accepts zero-padded codes", func(t *testing.T) {
		code, err := ParseOneTimeCode("000042")
		require.NoError(t, err)
		assert.Equal(t, "000042", code.Expose())
	})

	t.Run("parse rejects wrong shapes", func(t *testing.T) {
		for _, raw := range []string{"", "12345", "1234567", "12345a", "12 456", "１２３４５６"} {
			_, err := ParseOneTimeCode(raw)
			require.Error(t, err, "input: %q", raw)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})

	t.Run("equal compares by value", func(t *testing.T) {
		a, err := ParseOneTimeCode("123456")
		require.NoError(t, err)
		b, err := ParseOneTimeCode("123456")
		require.NoError(t, err)
		c, err := ParseOneTimeCode("654321")
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
	})

	t.Run("never prints its value", func(t *testing.T) {
		code, err := ParseOneTimeCode("123456")
		require.NoError(t, err)
		assert.Equal(t, Redacted, code.String())
		assert.NotContains(t, fmt.Sprintf("%+v", code), "123456")
	})
}

func TestSecretRedaction(t *testing.T) {
	secret := NewSecret("hunter2-token")

	t.Run("fmt verbs redact", func(t *testing.T) {
		assert.Equal(t, Redacted, fmt.Sprintf("%s", secret))
		assert.Equal(t, Redacted, fmt.Sprintf("%v", secret))
		assert.NotContains(t, fmt.Sprintf("%#v", secret), "hunter2")
	})

	t.Run("json redacts", func(t *testing.T) {
		out, err := json.Marshal(struct {
			Token Secret `json:"token"`
		}{Token: secret})
		require.NoError(t, err)
		assert.JSONEq(t, `{"token":"[REDACTED]"}`, string(out))
	})

	t.Run("expose returns the value", func(t *testing.T) {
		assert.Equal(t, "hunter2-token", secret.Expose())
	})
}
