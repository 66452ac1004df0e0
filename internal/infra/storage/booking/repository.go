package booking

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

const defaultListLimit = 100

var bookingColumns = []string{
	"id",
	"patron_id",
	"screening_id",
	"seat_label",
	"amount",
	"status",
	"refunded",
	"created_at",
	"updated_at",
}

// Repository is the append-only bookings ledger
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch inserts one row per booking in a single statement and fills ids and timestamps.
// Seat labels must be unique within the batch.
func (r *Repository) CreateBatch(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error) {
	if len(bookings) == 0 {
		return bookings, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("bookings").
		Columns(
			"patron_id",
			"screening_id",
			"seat_label",
			"amount",
			"status",
			"refunded",
		)
	byLabel := make(map[string]*domain.Booking, len(bookings))
	for _, b := range bookings {
		builder = builder.Values(b.PatronID, b.ScreeningID, b.SeatLabel, b.Amount, b.Status, b.Refunded)
		byLabel[b.SeatLabel] = b
	}

	query, args, err := builder.
		Suffix("RETURNING id, seat_label, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                   int64
			label                string
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&id, &label, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan returning: %w", ErrScanRow, err)
		}
		if b, ok := byLabel[label]; ok {
			b.ID = id
			b.CreatedAt = createdAt.Time
			b.UpdatedAt = updatedAt.Time
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// GetByID loads a booking
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return b, nil
}

// List returns bookings matching the filter, newest first
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("created_at DESC", "id DESC")

	if filter.PatronID != nil {
		builder = builder.Where(squirrel.Eq{"patron_id": *filter.PatronID})
	}
	if filter.ScreeningID != nil {
		builder = builder.Where(squirrel.Eq{"screening_id": *filter.ScreeningID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}

	limit := filter.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	builder = builder.Limit(limit).Offset(filter.Offset)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows, "List")
}

// ListConfirmedByScreening returns the bookings that still hold seats of the screening.
// Inside a transaction the rows are locked so a concurrent cascade cannot refund them twice.
func (r *Repository) ListConfirmedByScreening(ctx context.Context, screeningID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"screening_id": screeningID, "status": domain.StatusConfirmed}).
		OrderBy("id ASC")
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedByScreening - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedByScreening - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows, "ListConfirmedByScreening")
}

// MarkRefunded flips confirmed bookings to cancelled and refunded. Already cancelled rows are
// left untouched; the number of rows actually changed is returned.
func (r *Repository) MarkRefunded(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("refunded", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids, "status": domain.StatusConfirmed}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkRefunded - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkRefunded - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkRefunded - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.PatronID,
		&b.ScreeningID,
		&b.SeatLabel,
		&b.Amount,
		&b.Status,
		&b.Refunded,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

func scanBookings(rows *sql.Rows, op string) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, op, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return bookings, nil
}
