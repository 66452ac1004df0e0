package suggest_slot

import "time"

// Request asks for the next free start on a screen after a given time
type Request struct {
	VenueID            int64
	ScreenNumber       int
	After              time.Time
	DurationMinutes    int
	ExcludeScreeningID *int64
}

// Response carries the suggestion; Found is false when the rest of the day is taken
type Response struct {
	Found    bool
	StartsAt time.Time
	EndsAt   time.Time
}
