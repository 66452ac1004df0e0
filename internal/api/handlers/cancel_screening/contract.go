package cancel_screening

import (
	"context"

	cancelScreenings "github.com/m04kA/SMC-ShowtimeService/internal/usecase/cancel_screenings"
	"github.com/m04kA/SMC-ShowtimeService/pkg/taskrunner"
)

// ScreeningCanceller removes a screening and refunds its bookings, inline or as a background task
type ScreeningCanceller interface {
	CancelScreening(ctx context.Context, screeningID int64) (*cancelScreenings.Result, error)
	SubmitCancelScreening(screeningID int64) (taskrunner.Task, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
