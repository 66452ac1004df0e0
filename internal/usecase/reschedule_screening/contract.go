package reschedule_screening

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

type VenueRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Venue, error)
}

type ScreeningRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Screening, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Screening, error)
	UpdateInterval(ctx context.Context, id int64, start, end time.Time) (time.Time, error)
}

// ConflictChecker answers the two scheduling rules
type ConflictChecker interface {
	HasConflict(ctx context.Context, venueID int64, screenNumber int, start, end time.Time, excludeID *int64) (bool, error)
	HasTitleOnDate(ctx context.Context, city string, title domain.TitleRef, date time.Time, excludeID *int64) (bool, error)
}

type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
