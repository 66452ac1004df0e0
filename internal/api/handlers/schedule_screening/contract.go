package schedule_screening

import (
	"context"

	scheduleScreening "github.com/m04kA/SMC-ShowtimeService/internal/usecase/schedule_screening"
)

type ScheduleUseCase interface {
	Execute(ctx context.Context, req *scheduleScreening.Request) (*scheduleScreening.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
