package book_seats

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/internal/infra/broker"
)

type ScreeningRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Screening, error)
	UpdateGrid(ctx context.Context, id int64, grid domain.SeatGrid) (int64, error)
}

type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

type PatronRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Patron, error)
	Debit(ctx context.Context, id int64, amount int64) (int64, error)
}

type BookingRepository interface {
	CreateBatch(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error)
}

// SeatMapCache receives the seat map of the committed grid
type SeatMapCache interface {
	Set(ctx context.Context, m *domain.SeatMap) error
	Invalidate(ctx context.Context, screeningIDs ...int64) error
}

// EventPublisher announces confirmed bookings
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event broker.BookingConfirmedEvent) error
}

type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider is swapped in tests
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider reads the wall clock
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
