package schedule_screening

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

// VenueRepository is the venue storage used by scheduling
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Venue, error)
}

// ScreeningRepository is the screening storage used by scheduling
type ScreeningRepository interface {
	Create(ctx context.Context, s *domain.Screening) (*domain.Screening, error)
}

// ConflictChecker answers the two scheduling rules
type ConflictChecker interface {
	HasConflict(ctx context.Context, venueID int64, screenNumber int, start, end time.Time, excludeID *int64) (bool, error)
	HasTitleOnDate(ctx context.Context, city string, title domain.TitleRef, date time.Time, excludeID *int64) (bool, error)
}

// CatalogClient resolves titles in the external catalog
type CatalogClient interface {
	TitleExists(ctx context.Context, ref domain.TitleRef) (bool, error)
}

// TransactionManager runs the checks and the insert atomically
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
