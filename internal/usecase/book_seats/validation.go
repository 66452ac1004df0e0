package book_seats

import (
	"fmt"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

// parseSelection parses labels in request order and drops repeats
func parseSelection(req *Request) ([]domain.Seat, error) {
	if len(req.SeatLabels) == 0 {
		return nil, ErrEmptySelection
	}
	if req.PatronID <= 0 {
		return nil, fmt.Errorf("%w: patron id must be positive", ErrInvalidInput)
	}

	seen := make(map[domain.Seat]bool, len(req.SeatLabels))
	seats := make([]domain.Seat, 0, len(req.SeatLabels))
	for _, label := range req.SeatLabels {
		seat, err := domain.ParseSeatLabel(label)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		if seen[seat] {
			continue
		}
		seen[seat] = true
		seats = append(seats, seat)
	}

	if len(seats) > domain.MaxSeatsPerBooking {
		return nil, fmt.Errorf("%w: at most %d seats per booking", ErrInvalidInput, domain.MaxSeatsPerBooking)
	}
	return seats, nil
}
