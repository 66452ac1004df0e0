package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

// Request models

// CreateVenueRequest describes a new theatre. Every screen shares the rows x columns grid.
type CreateVenueRequest struct {
	City      string `json:"city"`
	Name      string `json:"name"`
	HallStyle string `json:"hallStyle"` // "standard" or "reversed-tier"
	Screens   int    `json:"screens"`
	Rows      int    `json:"rows"`
	Columns   int    `json:"columns"`
}

// ToDomainVenue converts the request, trimming names
func (r *CreateVenueRequest) ToDomainVenue() *domain.Venue {
	return &domain.Venue{
		City:      strings.TrimSpace(r.City),
		Name:      strings.TrimSpace(r.Name),
		HallStyle: domain.HallStyle(r.HallStyle),
		Screens:   r.Screens,
		Rows:      r.Rows,
		Columns:   r.Columns,
	}
}

// Response models

// VenueResponse venue data
type VenueResponse struct {
	ID        int64     `json:"id"`
	City      string    `json:"city"`
	Name      string    `json:"name"`
	HallStyle string    `json:"hallStyle"`
	Screens   int       `json:"screens"`
	Rows      int       `json:"rows"`
	Columns   int       `json:"columns"`
	Capacity  int       `json:"capacity"` // seats per screen
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VenueListResponse venues of a city
type VenueListResponse struct {
	Venues []VenueResponse `json:"venues"`
}

// FromDomainVenue converts a domain venue
func FromDomainVenue(v *domain.Venue) *VenueResponse {
	if v == nil {
		return nil
	}
	return &VenueResponse{
		ID:        v.ID,
		City:      v.City,
		Name:      v.Name,
		HallStyle: string(v.HallStyle),
		Screens:   v.Screens,
		Rows:      v.Rows,
		Columns:   v.Columns,
		Capacity:  v.Capacity(),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// FromDomainVenueList converts a list of domain venues
func FromDomainVenueList(venues []*domain.Venue) *VenueListResponse {
	resp := &VenueListResponse{Venues: make([]VenueResponse, 0, len(venues))}
	for _, v := range venues {
		resp.Venues = append(resp.Venues, *FromDomainVenue(v))
	}
	return resp
}
