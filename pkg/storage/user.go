package storage

import (
	"context"

	"discounts/pkg/domain"
)

// UserStorage defines the persistence operations for user identities.
// Lookups exclude soft-deleted records and return nil (not an error) when no
// matching row exists; distinguishing "absent" from a transport failure is
// left to the caller.
type UserStorage interface {
	// StoreUser inserts a new user and returns the stored row as it exists in
	// the database, including generated fields such as the ID and timestamps.
	StoreUser(ctx context.Context, user domain.User) (*domain.User, error)
	// UserByEmail fetches a user by the exact email string supplied at
	// registration. Returns nil when not found.
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
	// UserByID fetches a user by ID. Returns nil when not found.
	UserByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	// DeleteUser performs a soft delete and returns the deleted user, or nil
	// if it was not found.
	DeleteUser(ctx context.Context, id domain.UserID) (*domain.User, error)
}
