package sentinel

import "errors"

// Sentinel errors for store-boundary facts. The user, challenge, and revocation
// stores return these (optionally wrapped) so the auth service can translate
// them into domain errors without knowing which backend produced them.
//
// These represent factual outcomes, not validation failures:
// - ErrNotFound: record or challenge does not exist (or its TTL elapsed)
// - ErrConflict: a record already exists under that key
// - ErrInvalidCredentials: the supplied password does not verify against the stored hash
// - ErrExpired: token past its expiry
// - ErrRevoked: token present in the revocation list
//
// Infrastructure failures are returned as ordinary wrapped errors carrying the
// underlying cause; callers must not treat them as any of the outcomes above.
// For malformed input, use pkg/domain-errors directly.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrExpired            = errors.New("expired")
	ErrRevoked            = errors.New("revoked")
)
