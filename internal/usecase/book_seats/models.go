package book_seats

import "github.com/m04kA/SMC-ShowtimeService/internal/domain"

// Request to reserve seats of one screening for the calling patron
type Request struct {
	PatronID    int64
	ScreeningID int64
	SeatLabels  []string
}

// BookedSeat is one line of the receipt
type BookedSeat struct {
	BookingID int64
	Label     string
	Tier      domain.Tier
	Amount    int64
}

// Receipt is returned after the booking committed
type Receipt struct {
	PatronID    int64
	ScreeningID int64
	Seats       []BookedSeat
	Total       int64
	Balance     int64
}

// BookingIDs lists ids in seat order
func (r *Receipt) BookingIDs() []int64 {
	ids := make([]int64, len(r.Seats))
	for i, s := range r.Seats {
		ids[i] = s.BookingID
	}
	return ids
}

// Labels lists booked seat labels
func (r *Receipt) Labels() []string {
	labels := make([]string, len(r.Seats))
	for i, s := range r.Seats {
		labels[i] = s.Label
	}
	return labels
}
