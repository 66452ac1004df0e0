package handlers

import (
	cancelScreenings "github.com/m04kA/SMC-ShowtimeService/internal/usecase/cancel_screenings"
)

// CancelledScreeningResponse refunds of one removed screening
type CancelledScreeningResponse struct {
	ID               int64  `json:"id"`
	VenueID          int64  `json:"venueId"`
	TitleKind        string `json:"titleKind"`
	TitleID          int64  `json:"titleId"`
	RefundedBookings int    `json:"refundedBookings"`
	RefundedAmount   int64  `json:"refundedAmount"`
}

// CascadeResponse outcome of a cancellation cascade
type CascadeResponse struct {
	Screenings       []CancelledScreeningResponse `json:"screenings"`
	RefundedBookings int                          `json:"refundedBookings"`
	RefundedAmount   int64                        `json:"refundedAmount"`
	PatronsCredited  int                          `json:"patronsCredited"`
	VenueDeleted     bool                         `json:"venueDeleted,omitempty"`
}

// FromCascadeResult converts a cascade result
func FromCascadeResult(r *cancelScreenings.Result) *CascadeResponse {
	resp := &CascadeResponse{
		Screenings:       make([]CancelledScreeningResponse, 0, len(r.Screenings)),
		RefundedBookings: r.RefundedBookings,
		RefundedAmount:   r.RefundedAmount,
		PatronsCredited:  r.PatronsCredited,
		VenueDeleted:     r.VenueDeleted,
	}
	for _, s := range r.Screenings {
		resp.Screenings = append(resp.Screenings, CancelledScreeningResponse{
			ID:               s.ID,
			VenueID:          s.VenueID,
			TitleKind:        string(s.Title.Kind),
			TitleID:          s.Title.ID,
			RefundedBookings: s.RefundedBookings,
			RefundedAmount:   s.RefundedAmount,
		})
	}
	return resp
}

// TaskResult renders task results; cascade results are converted, anything else passes through
func TaskResult(result interface{}) interface{} {
	if r, ok := result.(*cancelScreenings.Result); ok && r != nil {
		return FromCascadeResult(r)
	}
	return result
}
