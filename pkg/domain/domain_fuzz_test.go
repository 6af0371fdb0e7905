package domain

import "testing"

// FuzzParseEmail checks the parser never panics and that accepted values
// round-trip through a second parse unchanged (normalization is idempotent).
func FuzzParseEmail(f *testing.F) {
	f.Add("user@example.com")
	f.Add("  User@Example.COM ")
	f.Add("")
	f.Add("@")
	f.Add("'; DROP TABLE users;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		email, err := ParseEmail(input)
		if err != nil {
			return
		}
		again, err := ParseEmail(email.String())
		if err != nil {
			t.Errorf("accepted email failed re-parse: %v", err)
		}
		if again != email {
			t.Errorf("normalization not idempotent: %q != %q", again, email)
		}
	})
}

// FuzzParseOneTimeCode checks the digit validation against arbitrary input.
func FuzzParseOneTimeCode(f *testing.F) {
	f.Add("123456")
	f.Add("000000")
	f.Add("12345")
	f.Add("abcdef")
	f.Add("12345\x00")

	f.Fuzz(func(t *testing.T, input string) {
		code, err := ParseOneTimeCode(input)
		if err != nil {
			return
		}
		if len(input) != 6 {
			t.Errorf("accepted code of length %d", len(input))
		}
		if code.Expose() != input {
			t.Error("parse changed the code value")
		}
	})
}
