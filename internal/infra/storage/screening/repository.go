package screening

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShowtimeService/pkg/psqlbuilder"
)

var screeningColumns = []string{
	"id",
	"venue_id",
	"screen_number",
	"title_kind",
	"title_id",
	"starts_at",
	"ends_at",
	"grid",
	"price_economy",
	"price_central",
	"price_premium",
	"grid_version",
	"created_at",
	"updated_at",
}

// Repository stores screenings together with their seat grids
type Repository struct {
	db DBExecutor
}

// NewRepository creates a screening repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a screening and fills its id and timestamps
func (r *Repository) Create(ctx context.Context, s *domain.Screening) (*domain.Screening, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("screenings").
		Columns(
			"venue_id",
			"screen_number",
			"title_kind",
			"title_id",
			"starts_at",
			"ends_at",
			"grid",
			"price_economy",
			"price_central",
			"price_premium",
		).
		Values(
			s.VenueID,
			s.ScreenNumber,
			s.Title.Kind,
			s.Title.ID,
			s.StartsAt,
			s.EndsAt,
			s.Grid,
			s.Prices.Economy,
			s.Prices.Central,
			s.Prices.Premium,
		).
		Suffix("RETURNING id, grid_version, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.GridVersion, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID loads a screening without locking it
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Screening, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate loads a screening and locks its row for the rest of the transaction.
// Bookings of one screening serialize on this lock.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Screening, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, lock bool) (*domain.Screening, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(screeningColumns...).
		From("screenings").
		Where(squirrel.Eq{"id": id})
	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	s, err := scanScreening(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScreeningNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan screening: %w", ErrScanRow, err)
	}

	return s, nil
}

// ListIntervalsByScreen returns the time slots taken on a screen, optionally skipping one screening
func (r *Repository) ListIntervalsByScreen(ctx context.Context, venueID int64, screenNumber int, excludeID *int64) ([]domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id", "starts_at", "ends_at").
		From("screenings").
		Where(squirrel.Eq{"venue_id": venueID, "screen_number": screenNumber}).
		OrderBy("starts_at ASC")
	if excludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListIntervalsByScreen - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListIntervalsByScreen - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.Interval, 0)
	for rows.Next() {
		var iv domain.Interval
		if err := rows.Scan(&iv.ScreeningID, &iv.StartsAt, &iv.EndsAt); err != nil {
			return nil, fmt.Errorf("%w: ListIntervalsByScreen - scan interval: %w", ErrScanRow, err)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListIntervalsByScreen - rows error: %w", ErrScanRow, err)
	}

	return intervals, nil
}

// ExistsTitleInCity reports whether the title has a screening starting in [from, to) at any venue of the city
func (r *Repository) ExistsTitleInCity(ctx context.Context, city string, title domain.TitleRef, from, to time.Time, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inner := psqlbuilder.Select("1").
		From("screenings s").
		Join("venues v ON v.id = s.venue_id").
		Where(squirrel.Eq{
			"v.city":       city,
			"s.title_kind": title.Kind,
			"s.title_id":   title.ID,
		}).
		Where(squirrel.GtOrEq{"s.starts_at": from}).
		Where(squirrel.Lt{"s.starts_at": to})
	if excludeID != nil {
		inner = inner.Where(squirrel.NotEq{"s.id": *excludeID})
	}

	query, args, err := inner.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsTitleInCity - build select query: %w", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsTitleInCity - execute query: %w", ErrExecQuery, err)
	}

	return exists, nil
}

// ListByScreenBetween returns screenings of a screen that start in [from, to)
func (r *Repository) ListByScreenBetween(ctx context.Context, venueID int64, screenNumber int, from, to time.Time) ([]*domain.Screening, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(screeningColumns...).
		From("screenings").
		Where(squirrel.Eq{"venue_id": venueID, "screen_number": screenNumber}).
		Where(squirrel.GtOrEq{"starts_at": from}).
		Where(squirrel.Lt{"starts_at": to}).
		OrderBy("starts_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByScreenBetween - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListByScreenBetween", query, args)
}

// ListIDsByTitle returns ids of every screening of the title. Inside a transaction the rows are locked.
func (r *Repository) ListIDsByTitle(ctx context.Context, title domain.TitleRef) ([]int64, error) {
	return r.listIDs(ctx, "ListIDsByTitle", squirrel.Eq{"title_kind": title.Kind, "title_id": title.ID})
}

// ListIDsByVenue returns ids of every screening held at the venue. Inside a transaction the rows are locked.
func (r *Repository) ListIDsByVenue(ctx context.Context, venueID int64) ([]int64, error) {
	return r.listIDs(ctx, "ListIDsByVenue", squirrel.Eq{"venue_id": venueID})
}

func (r *Repository) listIDs(ctx context.Context, op string, where squirrel.Sqlizer) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id").
		From("screenings").
		Where(where).
		OrderBy("id ASC")
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %s - scan id: %w", ErrScanRow, op, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return ids, nil
}

// UpdateInterval moves a screening to a new time slot
func (r *Repository) UpdateInterval(ctx context.Context, id int64, start, end time.Time) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("screenings").
		Set("starts_at", start).
		Set("ends_at", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: UpdateInterval - build update query: %w", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrScreeningNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: UpdateInterval - execute update: %w", ErrExecQuery, err)
	}

	return updatedAt, nil
}

// UpdateGrid persists the occupancy grid and returns the bumped grid version
func (r *Repository) UpdateGrid(ctx context.Context, id int64, grid domain.SeatGrid) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("screenings").
		Set("grid", grid).
		Set("grid_version", squirrel.Expr("grid_version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING grid_version").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateGrid - build update query: %w", ErrBuildQuery, err)
	}

	var version int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrScreeningNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateGrid - execute update: %w", ErrExecQuery, err)
	}

	return version, nil
}

// Delete removes a screening. Bookings stay in the ledger.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete("screenings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "Delete", query, args)
}

func (r *Repository) execOne(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrScreeningNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Screening, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	screenings := make([]*domain.Screening, 0)
	for rows.Next() {
		s, err := scanScreening(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan screening: %w", ErrScanRow, op, err)
		}
		screenings = append(screenings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return screenings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanScreening(row rowScanner) (*domain.Screening, error) {
	var s domain.Screening
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.VenueID,
		&s.ScreenNumber,
		&s.Title.Kind,
		&s.Title.ID,
		&s.StartsAt,
		&s.EndsAt,
		&s.Grid,
		&s.Prices.Economy,
		&s.Prices.Central,
		&s.Prices.Premium,
		&s.GridVersion,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}
