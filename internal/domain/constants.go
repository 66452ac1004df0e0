package domain

import "time"

// Scheduling constants
const (
	// SlotStep is the spacing between suggested start times.
	SlotStep = 15 * time.Minute
	// MaxSlotProbes bounds SuggestNextSlot; 96 steps of 15 minutes cover a full day.
	MaxSlotProbes = 96
	// MaxScreeningDuration rejects obviously broken intervals.
	MaxScreeningDuration = 24 * time.Hour
)

// Seat grid limits
const (
	MinGridRows    = 1
	MaxGridRows    = 26 // one letter per row
	MinGridColumns = 1
	MaxGridColumns = 50
	MaxScreens     = 50
)

// Booking limits
const (
	MaxSeatsPerBooking = 20
)

// DateFormat is the calendar date layout used in requests and responses
const DateFormat = "2006-01-02"
