package postgres

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"discounts/pkg/domain"
)

// PgUser is the database representation of domain.User.
type PgUser struct {
	ID uuid.UUID `db:"id" goqu:"skipinsert"`

	Email        string `db:"email"`
	FullName     string `db:"full_name"`
	PasswordHash string `db:"password_hash"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	DeletedAt sql.NullTime `db:"deleted_at" goqu:"skipinsert"`
}

// ToDomain converts the row into a domain.User.
func (p *PgUser) ToDomain() *domain.User {
	return &domain.User{
		ID:           domain.UserID(p.ID),
		Email:        p.Email,
		FullName:     p.FullName,
		PasswordHash: p.PasswordHash,
		CreatedAt:    p.CreatedAt,
		DeletedAt:    p.DeletedAt.Time,
	}
}

// FromDomain fills the row from a domain.User.
func (p *PgUser) FromDomain(user domain.User) {
	*p = PgUser{
		ID:           uuid.UUID(user.ID),
		Email:        user.Email,
		FullName:     user.FullName,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		DeletedAt: sql.NullTime{
			Time:  user.DeletedAt,
			Valid: !user.DeletedAt.IsZero(),
		},
	}
}

// PgDiscount is the database representation of domain.Discount. Coordinates
// are stored as plain double-precision columns; the domain Location invariant
// is re-established when converting back.
type PgDiscount struct {
	ID uuid.UUID `db:"id" goqu:"skipinsert"`

	Title              string  `db:"title"`
	Description        string  `db:"description"`
	DiscountPercentage int     `db:"discount_percentage"`
	StoreName          string  `db:"store_name"`
	Latitude           float64 `db:"latitude"`
	Longitude          float64 `db:"longitude"`

	ValidUntil time.Time `db:"valid_until"`
	Active     bool      `db:"is_active"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}

// ToDomain converts the row into a domain.Discount. It fails if the stored
// coordinates no longer satisfy the Location invariant (e.g. the service area
// was narrowed after the row was written).
func (p *PgDiscount) ToDomain() (*domain.Discount, error) {
	location, err := domain.NewLocation(p.Latitude, p.Longitude)
	if err != nil {
		return nil, err
	}

	return &domain.Discount{
		ID:                 domain.DiscountID(p.ID),
		Title:              p.Title,
		Description:        p.Description,
		DiscountPercentage: p.DiscountPercentage,
		StoreName:          p.StoreName,
		StoreLocation:      location,
		ValidUntil:         p.ValidUntil,
		Active:             p.Active,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt.Time,
	}, nil
}

// FromDomain fills the row from a domain.Discount.
func (p *PgDiscount) FromDomain(discount domain.Discount) {
	*p = PgDiscount{
		ID:                 uuid.UUID(discount.ID),
		Title:              discount.Title,
		Description:        discount.Description,
		DiscountPercentage: discount.DiscountPercentage,
		StoreName:          discount.StoreName,
		Latitude:           discount.StoreLocation.Latitude(),
		Longitude:          discount.StoreLocation.Longitude(),
		ValidUntil:         discount.ValidUntil,
		Active:             discount.Active,
		CreatedAt:          discount.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  discount.UpdatedAt,
			Valid: !discount.UpdatedAt.IsZero(),
		},
	}
}

func domainDiscountsToPg(discounts []domain.Discount) []PgDiscount {
	out := make([]PgDiscount, len(discounts))
	for i := range out {
		out[i].FromDomain(discounts[i])
	}

	return out
}

func pgDiscountsToDomain(discounts []PgDiscount) ([]domain.Discount, error) {
	out := make([]domain.Discount, 0, len(discounts))
	for _, row := range discounts {
		d, err := row.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
