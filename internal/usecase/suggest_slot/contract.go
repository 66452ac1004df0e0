package suggest_slot

import (
	"context"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/conflicts"
)

type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// ScheduleReader loads what is already booked on a screen
type ScheduleReader interface {
	ScreenSchedule(ctx context.Context, venueID int64, screenNumber int, excludeID *int64) (conflicts.Schedule, error)
}

type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
