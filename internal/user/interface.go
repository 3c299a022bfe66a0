// Package user implements the identity use cases: authentication,
// registration, lookup and deletion. All failures are returned as serrors
// values; nothing in this package panics across a call boundary.
package user

import (
	"context"

	"discounts/pkg/domain"
)

// NewUser is the registration input. Password is plaintext here and is
// hashed before anything is persisted.
type NewUser struct {
	Email    string
	Password string
	FullName string
}

// Service exposes the identity workflows.
type Service interface {
	// Authenticate verifies the credentials and returns a signed session
	// token. Rejections carry serrors.ErrNoValidCredentials with a reason
	// that never reveals which part of the credentials was wrong.
	Authenticate(ctx context.Context, email, password string) (string, error)
	// Create registers a new user and returns the stored identity with the
	// password hash blanked.
	Create(ctx context.Context, input NewUser) (*domain.User, error)
	// Get fetches a user by ID, failing with serrors.ErrNotFound when absent.
	Get(ctx context.Context, id domain.UserID) (*domain.User, error)
	// Delete soft-deletes a user, failing with serrors.ErrNotFound when absent.
	Delete(ctx context.Context, id domain.UserID) error
}
