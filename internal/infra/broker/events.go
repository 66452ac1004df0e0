package broker

import "time"

// Queue names
const (
	QueueBookingConfirmed   = "booking.confirmed"
	QueueScreeningCancelled = "screening.cancelled"
)

// BookingConfirmedEvent is published after a booking transaction commits.
type BookingConfirmedEvent struct {
	PatronID    int64     `json:"patronId"`
	ScreeningID int64     `json:"screeningId"`
	BookingIDs  []int64   `json:"bookingIds"`
	Seats       []string  `json:"seats"`
	Total       int64     `json:"total"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// ScreeningCancelledEvent is published after a screening was removed and its bookings refunded.
type ScreeningCancelledEvent struct {
	ScreeningID      int64     `json:"screeningId"`
	VenueID          int64     `json:"venueId"`
	TitleKind        string    `json:"titleKind"`
	TitleID          int64     `json:"titleId"`
	RefundedBookings int       `json:"refundedBookings"`
	RefundedAmount   int64     `json:"refundedAmount"`
	OccurredAt       time.Time `json:"occurredAt"`
}
