package cancel_title_screenings

import (
	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/pkg/taskrunner"
)

// TitleCanceller queues the cascade over every screening of a title
type TitleCanceller interface {
	SubmitCancelTitle(title domain.TitleRef) (taskrunner.Task, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
