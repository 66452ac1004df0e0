package screenings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

// ScreeningRepository read side of the screenings table
type ScreeningRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Screening, error)
	ListByScreenBetween(ctx context.Context, venueID int64, screenNumber int, from, to time.Time) ([]*domain.Screening, error)
}

// VenueRepository resolves the hall style and screens of a venue
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// SeatMapCache read-through cache of seat maps
type SeatMapCache interface {
	Get(ctx context.Context, screeningID int64) (*domain.SeatMap, error)
	Set(ctx context.Context, m *domain.SeatMap) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
