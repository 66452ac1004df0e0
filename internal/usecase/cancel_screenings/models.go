package cancel_screenings

import "github.com/m04kA/SMC-ShowtimeService/internal/domain"

// CancelledScreening reports the refunds of one removed screening
type CancelledScreening struct {
	ID               int64
	VenueID          int64
	Title            domain.TitleRef
	RefundedBookings int
	RefundedAmount   int64
}

// Result of a cascade
type Result struct {
	Screenings       []CancelledScreening
	RefundedBookings int
	RefundedAmount   int64
	PatronsCredited  int
	VenueDeleted     bool
}

// ScreeningIDs lists the removed screenings
func (r *Result) ScreeningIDs() []int64 {
	ids := make([]int64, len(r.Screenings))
	for i, s := range r.Screenings {
		ids[i] = s.ID
	}
	return ids
}
