package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"discounts/pkg/domain"
	"discounts/pkg/storage"
)

const discountsTable = "discounts"

// StoreDiscounts inserts one or more discounts and returns the stored rows.
func (p *PgSQL) StoreDiscounts(ctx context.Context, discounts ...domain.Discount) ([]domain.Discount, error) {
	if len(discounts) == 0 {
		return nil, nil
	}

	var result []PgDiscount
	if err := p.Builder.Insert(discountsTable).
		Rows(domainDiscountsToPg(discounts)).
		Returning(&PgDiscount{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store discounts into pg: %w", err)
	}

	return pgDiscountsToDomain(result)
}

// ActiveDiscountsWithin returns all active discounts inside the coordinate
// window, newest first. The window is the coarse prefilter; exact radius
// filtering belongs to the caller.
func (p *PgSQL) ActiveDiscountsWithin(ctx context.Context,
	window storage.CoordinateWindow) ([]domain.Discount, error) {
	var rows []PgDiscount
	if err := p.Builder.From(discountsTable).
		Where(
			goqu.I("is_active").IsTrue(),
			goqu.I("latitude").Between(goqu.Range(window.MinLatitude, window.MaxLatitude)),
			goqu.I("longitude").Between(goqu.Range(window.MinLongitude, window.MaxLongitude)),
		).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch discounts from pg: %w", err)
	}

	return pgDiscountsToDomain(rows)
}

// DeactivateExpired flips is_active off for every active discount whose
// valid_until is at or before now, returning the number of rows changed.
func (p *PgSQL) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := p.Builder.Update(discountsTable).
		Set(goqu.Record{
			"is_active":  false,
			"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		}).Where(
		goqu.I("is_active").IsTrue(),
		goqu.I("valid_until").Lte(now),
	).Executor().ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not deactivate expired discounts in pg: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not read affected rows: %w", err)
	}

	return affected, nil
}
