package get_screening

import (
	"context"

	"github.com/m04kA/SMC-ShowtimeService/internal/service/screenings/models"
)

type ScreeningService interface {
	GetByID(ctx context.Context, id int64) (*models.ScreeningResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
