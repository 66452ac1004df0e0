package book_seats

import (
	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	bookSeats "github.com/m04kA/SMC-ShowtimeService/internal/usecase/book_seats"
)

// BookSeatsRequest HTTP request model
type BookSeatsRequest struct {
	Seats []string `json:"seats"` // "A1", "C10"
}

// BookedSeatResponse one line of the receipt
type BookedSeatResponse struct {
	BookingID int64  `json:"bookingId"`
	Label     string `json:"label"`
	Tier      string `json:"tier"`
	Amount    int64  `json:"amount"`
}

// ReceiptResponse HTTP response model
type ReceiptResponse struct {
	PatronID    int64                `json:"patronId"`
	ScreeningID int64                `json:"screeningId"`
	Seats       []BookedSeatResponse `json:"seats"`
	Total       int64                `json:"total"`
	Balance     int64                `json:"balance"`
}

// SeatConflictResponse names the seat that was already taken
type SeatConflictResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
	Seat   string `json:"seat"`
}

func (r *BookSeatsRequest) ToUseCaseRequest(patronID, screeningID int64) *bookSeats.Request {
	return &bookSeats.Request{
		PatronID:    patronID,
		ScreeningID: screeningID,
		SeatLabels:  r.Seats,
	}
}

func FromReceipt(receipt *bookSeats.Receipt) *ReceiptResponse {
	resp := &ReceiptResponse{
		PatronID:    receipt.PatronID,
		ScreeningID: receipt.ScreeningID,
		Seats:       make([]BookedSeatResponse, 0, len(receipt.Seats)),
		Total:       receipt.Total,
		Balance:     receipt.Balance,
	}
	for _, s := range receipt.Seats {
		resp.Seats = append(resp.Seats, BookedSeatResponse{
			BookingID: s.BookingID,
			Label:     s.Label,
			Tier:      string(s.Tier),
			Amount:    s.Amount,
		})
	}
	return resp
}

func newSeatConflict(err *domain.SeatUnavailableError) SeatConflictResponse {
	return SeatConflictResponse{
		Error:  err.Error(),
		Reason: domain.ReasonSeatUnavailable,
		Seat:   err.Label,
	}
}
