package venues

import (
	"context"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

// VenueRepository stores venues
type VenueRepository interface {
	Create(ctx context.Context, venue *domain.Venue) (*domain.Venue, error)
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	ListByCity(ctx context.Context, city string) ([]*domain.Venue, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
