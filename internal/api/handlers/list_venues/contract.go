package list_venues

import (
	"context"

	"github.com/m04kA/SMC-ShowtimeService/internal/service/venues/models"
)

type VenueService interface {
	ListByCity(ctx context.Context, city string) (*models.VenueListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
