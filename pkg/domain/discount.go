package domain

import (
	"time"

	"github.com/google/uuid"
)

// DiscountID uniquely identifies a discount.
// It wraps uuid.UUID to provide type safety at the domain layer.
type DiscountID uuid.UUID

// String returns the canonical textual form of the ID.
func (id DiscountID) String() string { return uuid.UUID(id).String() }

// MarshalText encodes the ID in its canonical textual form.
func (id DiscountID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText parses the ID from its canonical textual form.
func (id *DiscountID) UnmarshalText(b []byte) error {
	parsed, err := uuid.ParseBytes(b)
	if err != nil {
		return err //nolint: wrapcheck
	}
	*id = DiscountID(parsed)

	return nil
}

// Discount represents a geofenced offer published by a store.
type Discount struct {
	// ID is the unique identifier of the discount.
	ID DiscountID `json:"id"`

	// Title is a short headline shown in listings.
	Title string `json:"title"`
	// Description holds the full offer text.
	Description string `json:"description"`
	// DiscountPercentage is the advertised reduction, 0-100.
	DiscountPercentage int `json:"discountPercentage"`
	// StoreName is the display name of the store offering the discount.
	StoreName string `json:"storeName"`
	// StoreLocation is where the offer can be redeemed. It is always inside
	// the service area, enforced by NewLocation at the ingestion boundary.
	StoreLocation Location `json:"-"`

	// ValidUntil is the moment the offer stops being redeemable.
	ValidUntil time.Time `json:"validUntil"`
	// Active reports whether the offer is currently published. The expiry
	// worker flips this off once ValidUntil passes.
	Active bool `json:"isActive"`

	// CreatedAt is the time when the discount record was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the time when the discount was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Valid reports whether the discount is redeemable at the given instant.
func (d Discount) Valid(now time.Time) bool {
	return d.Active && d.ValidUntil.After(now)
}
