package delete_venue

import (
	"github.com/m04kA/SMC-ShowtimeService/pkg/taskrunner"
)

// VenueRemover queues the refund cascade that ends with removing the venue
type VenueRemover interface {
	SubmitDeleteVenue(venueID int64) (taskrunner.Task, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
