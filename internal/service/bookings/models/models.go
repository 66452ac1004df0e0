package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

const MaxPageSize = 100

var (
	// ErrInvalidStatus is returned for an unknown booking status
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request models

// GetPatronBookingsRequest asks for the booking history of a patron
type GetPatronBookingsRequest struct {
	Session  domain.Session
	PatronID int64
	Status   *string // optional filter
	Limit    uint64
	Offset   uint64
}

// ToDomainFilter converts the request to a repository filter
func (r *GetPatronBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	patronID := r.PatronID
	filter := domain.BookingsFilter{
		PatronID: &patronID,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response models

// BookingResponse one booked seat
type BookingResponse struct {
	ID          int64     `json:"id"`
	PatronID    int64     `json:"patronId"`
	ScreeningID int64     `json:"screeningId"`
	SeatLabel   string    `json:"seatLabel"`
	Amount      int64     `json:"amount"`
	Status      string    `json:"status"`
	Refunded    bool      `json:"refunded"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookingListResponse a page of bookings, newest first
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking converts a domain booking
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:          b.ID,
		PatronID:    b.PatronID,
		ScreeningID: b.ScreeningID,
		SeatLabel:   b.SeatLabel,
		Amount:      b.Amount,
		Status:      string(b.Status),
		Refunded:    b.Refunded,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// FromDomainBookingList converts a list of domain bookings
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, booking := range bookings {
		if b := FromDomainBooking(booking); b != nil {
			resp.Bookings = append(resp.Bookings, *b)
		}
	}
	return resp
}

// ToDomainBookingStatus parses and validates a status
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
