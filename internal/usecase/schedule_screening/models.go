package schedule_screening

import (
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

// Request to publish a new screening
type Request struct {
	VenueID      int64
	ScreenNumber int
	Title        domain.TitleRef
	StartsAt     time.Time
	EndsAt       time.Time
	Prices       domain.Prices
}

// Response is the created screening
type Response struct {
	ID           int64
	VenueID      int64
	ScreenNumber int
	Title        domain.TitleRef
	StartsAt     time.Time
	EndsAt       time.Time
	Prices       domain.Prices
	Rows         int
	Columns      int
	CreatedAt    time.Time
}
