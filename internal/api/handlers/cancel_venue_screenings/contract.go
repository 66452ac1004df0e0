package cancel_venue_screenings

import (
	"github.com/m04kA/SMC-ShowtimeService/pkg/taskrunner"
)

type VenueCanceller interface {
	SubmitCancelVenue(venueID int64) (taskrunner.Task, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
