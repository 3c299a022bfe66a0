// Package hash provides one-way password hashing with verification.
//
// Two interchangeable strategies are available: bcrypt with a configurable
// cost factor and argon2id with OWASP-recommended parameters. The strategy is
// selected once at process start from configuration and injected wherever a
// Hasher is needed; it is never re-selected per call.
package hash

import (
	"discounts/pkg/serrors"
)

// Supported provider names, as they appear in configuration.
const (
	ProviderBcrypt   = "bcrypt"
	ProviderArgon2id = "argon2id"
)

// Hasher hashes plaintext passwords and verifies them against stored hashes.
// Hash is salted and therefore non-deterministic: two calls on the same
// plaintext produce different ciphertexts. Equality must only ever be tested
// through Compare, never by string comparison.
type Hasher interface {
	// Hash produces a self-describing hash of the plaintext.
	Hash(plaintext string) (string, error)

	// Compare reports whether plaintext matches the stored hash. It never
	// fails: malformed or foreign hashes simply compare false.
	Compare(plaintext, hashed string) bool
}

// New returns the Hasher for the given provider name. cost only applies to
// the bcrypt provider; values below bcrypt's minimum fall back to the
// configured default.
func New(provider string, cost int) (Hasher, error) {
	switch provider {
	case ProviderBcrypt:
		return NewBcrypt(cost), nil
	case ProviderArgon2id:
		return NewArgon2id(), nil
	default:
		return nil, serrors.With(serrors.ErrBadRequest, "unknown hash provider %q", provider)
	}
}
