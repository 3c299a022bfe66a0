package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"discounts/pkg/domain"
)

const usersTable = "users"

// StoreUser inserts a new user and returns the stored row.
func (p *PgSQL) StoreUser(ctx context.Context, user domain.User) (*domain.User, error) {
	var pgUser PgUser
	pgUser.FromDomain(user)

	var row PgUser
	found, err := p.Builder.Insert(usersTable).
		Rows(pgUser).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not store user into pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("insert into %s returned no row", usersTable)
	}

	return row.ToDomain(), nil
}

// UserByEmail fetches a user by the exact email string, excluding
// soft-deleted rows. Returns nil when not found.
func (p *PgSQL) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.From(usersTable).
		Where(
			goqu.I("email").Eq(email),
			goqu.I("deleted_at").IsNull(),
		).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user by email from pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// UserByID fetches a user by ID, excluding soft-deleted rows. Returns nil
// when not found.
func (p *PgSQL) UserByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.From(usersTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("deleted_at").IsNull(),
		).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user by id from pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// DeleteUser performs a soft delete by setting deleted_at, returning the
// deleted record or nil if no live row matched.
func (p *PgSQL) DeleteUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.Update(usersTable).
		Set(goqu.Record{
			"deleted_at": goqu.L("CURRENT_TIMESTAMP"),
		}).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgUser{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete user in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}
