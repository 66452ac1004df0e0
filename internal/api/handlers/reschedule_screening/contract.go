package reschedule_screening

import (
	"context"

	"github.com/m04kA/SMC-ShowtimeService/internal/service/screenings/models"
	rescheduleScreening "github.com/m04kA/SMC-ShowtimeService/internal/usecase/reschedule_screening"
)

type RescheduleUseCase interface {
	Execute(ctx context.Context, req *rescheduleScreening.Request) (*rescheduleScreening.Response, error)
}

// ScreeningReader resolves the screen of a screening for the conflict hint
type ScreeningReader interface {
	GetByID(ctx context.Context, id int64) (*models.ScreeningResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
