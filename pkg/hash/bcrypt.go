package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the cost factor used when configuration does not
// provide one.
const DefaultBcryptCost = 10

// Bcrypt implements Hasher using the bcrypt algorithm. Salting is handled by
// the library, so each Hash call yields a distinct ciphertext.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a bcrypt Hasher with the given cost factor. Costs below
// bcrypt's minimum are replaced with DefaultBcryptCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost {
		cost = DefaultBcryptCost
	}

	return &Bcrypt{cost: cost}
}

// Hash produces a salted bcrypt hash of the plaintext.
func (b *Bcrypt) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}

	return string(hashed), nil
}

// Compare reports whether plaintext matches the stored bcrypt hash.
// Malformed hashes compare false.
func (b *Bcrypt) Compare(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
