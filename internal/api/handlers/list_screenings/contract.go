package list_screenings

import (
	"context"

	"github.com/m04kA/SMC-ShowtimeService/internal/service/screenings/models"
)

type ScreeningService interface {
	ListByScreenOnDate(ctx context.Context, req *models.ListRequest) (*models.ScreeningListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
