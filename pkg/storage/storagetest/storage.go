// Package storagetest provides a configurable in-memory fake of the storage
// port for service and handler tests. Each operation delegates to an optional
// function field; unset fields behave like an empty database.
package storagetest

import (
	"context"
	"time"

	"github.com/riverqueue/river"

	"discounts/pkg/domain"
	"discounts/pkg/storage"
)

// Storage is a fake storage.Storage. Set the function fields you need in a
// test; the rest default to "no rows, no error".
type Storage struct {
	StoreUserFunc   func(ctx context.Context, user domain.User) (*domain.User, error)
	UserByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	UserByIDFunc    func(ctx context.Context, id domain.UserID) (*domain.User, error)
	DeleteUserFunc  func(ctx context.Context, id domain.UserID) (*domain.User, error)

	StoreDiscountsFunc        func(ctx context.Context, discounts ...domain.Discount) ([]domain.Discount, error)
	ActiveDiscountsWithinFunc func(ctx context.Context, window storage.CoordinateWindow) ([]domain.Discount, error)
	DeactivateExpiredFunc     func(ctx context.Context, now time.Time) (int64, error)

	AddJobFunc func(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}

var _ storage.Storage = (*Storage)(nil)

func (s *Storage) StoreUser(ctx context.Context, user domain.User) (*domain.User, error) {
	if s.StoreUserFunc != nil {
		return s.StoreUserFunc(ctx, user)
	}

	return &user, nil
}

func (s *Storage) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.UserByEmailFunc != nil {
		return s.UserByEmailFunc(ctx, email)
	}

	return nil, nil
}

func (s *Storage) UserByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	if s.UserByIDFunc != nil {
		return s.UserByIDFunc(ctx, id)
	}

	return nil, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	if s.DeleteUserFunc != nil {
		return s.DeleteUserFunc(ctx, id)
	}

	return nil, nil
}

func (s *Storage) StoreDiscounts(ctx context.Context, discounts ...domain.Discount) ([]domain.Discount, error) {
	if s.StoreDiscountsFunc != nil {
		return s.StoreDiscountsFunc(ctx, discounts...)
	}

	return discounts, nil
}

func (s *Storage) ActiveDiscountsWithin(ctx context.Context,
	window storage.CoordinateWindow) ([]domain.Discount, error) {
	if s.ActiveDiscountsWithinFunc != nil {
		return s.ActiveDiscountsWithinFunc(ctx, window)
	}

	return nil, nil
}

func (s *Storage) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	if s.DeactivateExpiredFunc != nil {
		return s.DeactivateExpiredFunc(ctx, now)
	}

	return 0, nil
}

func (s *Storage) AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	if s.AddJobFunc != nil {
		return s.AddJobFunc(ctx, args, opts)
	}

	return true, nil
}

func (s *Storage) Close() error { return nil }

// Begin returns a transactional view backed by the same fake. Commit and
// Rollback are no-ops; transactional semantics are not simulated.
func (s *Storage) Begin(ctx context.Context) (storage.TxStorage, error) {
	return &Tx{Storage: s}, nil
}

// WithTx invokes the callback with the fake itself.
func (s *Storage) WithTx(ctx context.Context, cb func(storage storage.AllStorage) error) error {
	return cb(s)
}

// Tx is the TxStorage view of a fake Storage.
type Tx struct {
	*Storage
}

func (t *Tx) Commit() error   { return nil }
func (t *Tx) Rollback() error { return nil }
