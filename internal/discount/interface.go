// Package discount implements the offer use cases: publishing geofenced
// discounts, proximity search around a point, and the expiry sweep that
// deactivates offers past their validity window.
package discount

import (
	"context"
	"time"

	"discounts/pkg/domain"
)

// NewDiscount is the publishing input. Latitude and longitude are validated
// into a domain.Location before anything is persisted.
type NewDiscount struct {
	Title              string
	Description        string
	DiscountPercentage int
	StoreName          string
	Latitude           float64
	Longitude          float64
	ValidUntil         time.Time
}

// Service exposes the discount workflows.
type Service interface {
	// Nearby returns the active, unexpired discounts whose store lies within
	// radiusKm of the given point, closest first. The point must be inside
	// the service area and the radius within (0, MaxRadiusKm].
	Nearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]domain.Discount, error)
	// Publish validates and stores one or more discounts, scheduling an
	// expiry sweep for the earliest ValidUntil among them. Storage and job
	// insertion happen in a single transaction.
	Publish(ctx context.Context, inputs ...NewDiscount) ([]domain.Discount, error)
	// ExpireOutdated deactivates every active discount whose ValidUntil is at
	// or before now and returns the number of rows changed.
	ExpireOutdated(ctx context.Context, now time.Time) (int64, error)
}
