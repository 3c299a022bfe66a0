package storage

import (
	"context"
	"time"

	"discounts/pkg/domain"
)

// CoordinateWindow is a rectangular latitude/longitude range used as a coarse
// SQL prefilter for proximity queries. Exact distance filtering happens in
// the domain layer with Location.DistanceTo.
type CoordinateWindow struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
}

// DiscountStorage defines the persistence operations for discounts.
type DiscountStorage interface {
	// StoreDiscounts inserts one or more discounts and returns the stored
	// rows as they exist in the database (including generated fields).
	StoreDiscounts(ctx context.Context, discounts ...domain.Discount) ([]domain.Discount, error)
	// ActiveDiscountsWithin returns all active discounts whose store location
	// falls inside the window, ordered by creation time descending.
	ActiveDiscountsWithin(ctx context.Context, window CoordinateWindow) ([]domain.Discount, error)
	// DeactivateExpired flips Active off for every active discount whose
	// ValidUntil is at or before now, returning the number of rows changed.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
