package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID uniquely identifies a user within the system.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// String returns the canonical textual form of the ID.
func (id UserID) String() string { return uuid.UUID(id).String() }

// MarshalText encodes the ID in its canonical textual form.
func (id UserID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText parses the ID from its canonical textual form.
func (id *UserID) UnmarshalText(b []byte) error {
	parsed, err := uuid.ParseBytes(b)
	if err != nil {
		return err //nolint: wrapcheck
	}
	*id = UserID(parsed)

	return nil
}

// User represents a registered identity. PasswordHash holds the one-way hash
// produced by the configured hasher, never a plaintext password.
type User struct {
	// ID is the unique identifier of the user.
	ID UserID `json:"id"`

	// Email is the address the user registered and logs in with. It is stored
	// verbatim, exactly as it was supplied at registration.
	Email string `json:"email"`
	// FullName is the user's display name.
	FullName string `json:"fullName"`
	// PasswordHash is the stored credential hash. It is never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the time when the user record was created.
	CreatedAt time.Time `json:"createdAt"`
	// DeletedAt marks when the user was soft-deleted; zero value means not deleted.
	DeletedAt time.Time `json:"-"`
}
