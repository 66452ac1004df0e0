package patron

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShowtimeService/pkg/psqlbuilder"
)

// Repository owns the balance column of patron accounts
type Repository struct {
	db DBExecutor
}

// NewRepository creates a patron repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID loads a patron balance
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Patron, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate loads a patron balance and locks the row
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Patron, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, lock bool) (*domain.Patron, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id", "balance", "updated_at").
		From("patrons").
		Where(squirrel.Eq{"id": id})
	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var p domain.Patron
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Balance, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPatronNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan patron: %w", ErrExecQuery, err)
	}
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// Debit subtracts amount and returns the new balance. The balance never goes negative:
// the update only matches when enough funds are present.
func (r *Repository) Debit(ctx context.Context, id int64, amount int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("patrons").
		Set("balance", squirrel.Expr("balance - ?", amount)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.GtOrEq{"balance": amount}).
		Suffix("RETURNING balance").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Debit - build update query: %w", ErrBuildQuery, err)
	}

	var balance int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrInsufficientFunds
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Debit - execute update: %w", ErrExecQuery, err)
	}

	return balance, nil
}

// Credit adds amount and returns the new balance
func (r *Repository) Credit(ctx context.Context, id int64, amount int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("patrons").
		Set("balance", squirrel.Expr("balance + ?", amount)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING balance").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Credit - build update query: %w", ErrBuildQuery, err)
	}

	var balance int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrPatronNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Credit - execute update: %w", ErrExecQuery, err)
	}

	return balance, nil
}

// TopUp credits amount, creating the balance record on first use
func (r *Repository) TopUp(ctx context.Context, id int64, amount int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("patrons").
		Columns("id", "balance").
		Values(id, amount).
		Suffix("ON CONFLICT (id) DO UPDATE SET balance = patrons.balance + EXCLUDED.balance, updated_at = NOW() RETURNING balance").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: TopUp - build upsert query: %w", ErrBuildQuery, err)
	}

	var balance int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&balance); err != nil {
		return 0, fmt.Errorf("%w: TopUp - execute upsert: %w", ErrExecQuery, err)
	}

	return balance, nil
}
