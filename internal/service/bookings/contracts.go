package bookings

import (
	"context"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

// BookingRepository read side of the bookings ledger
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// Logger used by the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
