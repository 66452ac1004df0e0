package reschedule_screening

import (
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

// Request moves a screening to a new interval
type Request struct {
	ScreeningID int64
	StartsAt    time.Time
	EndsAt      time.Time
}

// Response is the screening after the move
type Response struct {
	ID           int64
	VenueID      int64
	ScreenNumber int
	Title        domain.TitleRef
	StartsAt     time.Time
	EndsAt       time.Time
	Occupied     int
	UpdatedAt    time.Time
}
