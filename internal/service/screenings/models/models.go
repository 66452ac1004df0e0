package models

import (
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

// PricesResponse per-tier prices in minor units
type PricesResponse struct {
	Economy int64 `json:"economy"`
	Central int64 `json:"central"`
	Premium int64 `json:"premium"`
}

// ScreeningResponse screening details without the seat grid
type ScreeningResponse struct {
	ID           int64          `json:"id"`
	VenueID      int64          `json:"venueId"`
	ScreenNumber int            `json:"screenNumber"`
	TitleKind    string         `json:"titleKind"`
	TitleID      int64          `json:"titleId"`
	StartsAt     time.Time      `json:"startsAt"`
	EndsAt       time.Time      `json:"endsAt"`
	Prices       PricesResponse `json:"prices"`
	Rows         int            `json:"rows"`
	Columns      int            `json:"columns"`
	Occupied     int            `json:"occupied"`
	Capacity     int            `json:"capacity"`
}

// ScreeningListResponse screenings of one screen on one date
type ScreeningListResponse struct {
	VenueID      int64                `json:"venueId"`
	ScreenNumber int                  `json:"screenNumber"`
	Date         string               `json:"date"` // "2024-03-10"
	Screenings   []*ScreeningResponse `json:"screenings"`
	Total        int                  `json:"total"`
}

// ListRequest selects a screen and a calendar date
type ListRequest struct {
	VenueID      int64
	ScreenNumber int
	Date         time.Time
}

func FromDomainPrices(p domain.Prices) PricesResponse {
	return PricesResponse{Economy: p.Economy, Central: p.Central, Premium: p.Premium}
}

// FromDomainScreening converts a screening
func FromDomainScreening(s *domain.Screening) *ScreeningResponse {
	return &ScreeningResponse{
		ID:           s.ID,
		VenueID:      s.VenueID,
		ScreenNumber: s.ScreenNumber,
		TitleKind:    string(s.Title.Kind),
		TitleID:      s.Title.ID,
		StartsAt:     s.StartsAt,
		EndsAt:       s.EndsAt,
		Prices:       FromDomainPrices(s.Prices),
		Rows:         s.Grid.Rows(),
		Columns:      s.Grid.Columns(),
		Occupied:     s.Grid.Occupancy(),
		Capacity:     s.Grid.Capacity(),
	}
}
