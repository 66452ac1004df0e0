package schedule_screening

import (
	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	scheduleScreening "github.com/m04kA/SMC-ShowtimeService/internal/usecase/schedule_screening"
)

// TitleRequest references a film or a live event
type TitleRequest struct {
	Kind string `json:"kind"` // "film" or "live_event"
	ID   int64  `json:"id"`
}

// PricesRequest per-tier prices in minor units
type PricesRequest struct {
	Economy int64 `json:"economy"`
	Central int64 `json:"central"`
	Premium int64 `json:"premium"`
}

// ScheduleScreeningRequest HTTP request model
type ScheduleScreeningRequest struct {
	VenueID      int64         `json:"venueId"`
	ScreenNumber int           `json:"screenNumber"`
	Title        TitleRequest  `json:"title"`
	StartsAt     string        `json:"startsAt"` // RFC 3339
	EndsAt       string        `json:"endsAt"`
	Prices       PricesRequest `json:"prices"`
}

// ScreeningResponse HTTP response model
type ScreeningResponse struct {
	ID           int64         `json:"id"`
	VenueID      int64         `json:"venueId"`
	ScreenNumber int           `json:"screenNumber"`
	Title        TitleRequest  `json:"title"`
	StartsAt     string        `json:"startsAt"`
	EndsAt       string        `json:"endsAt"`
	Prices       PricesRequest `json:"prices"`
	Rows         int           `json:"rows"`
	Columns      int           `json:"columns"`
	CreatedAt    string        `json:"createdAt"`
}

// ToUseCaseRequest parses timestamps and converts the request
func (r *ScheduleScreeningRequest) ToUseCaseRequest() (*scheduleScreening.Request, error) {
	startsAt, err := handlers.ParseTime(r.StartsAt)
	if err != nil {
		return nil, err
	}
	endsAt, err := handlers.ParseTime(r.EndsAt)
	if err != nil {
		return nil, err
	}

	return &scheduleScreening.Request{
		VenueID:      r.VenueID,
		ScreenNumber: r.ScreenNumber,
		Title:        domain.TitleRef{Kind: domain.TitleKind(r.Title.Kind), ID: r.Title.ID},
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		Prices:       domain.Prices{Economy: r.Prices.Economy, Central: r.Prices.Central, Premium: r.Prices.Premium},
	}, nil
}

// FromUseCaseResponse converts the created screening
func FromUseCaseResponse(resp *scheduleScreening.Response) *ScreeningResponse {
	return &ScreeningResponse{
		ID:           resp.ID,
		VenueID:      resp.VenueID,
		ScreenNumber: resp.ScreenNumber,
		Title:        TitleRequest{Kind: string(resp.Title.Kind), ID: resp.Title.ID},
		StartsAt:     handlers.FormatTime(resp.StartsAt),
		EndsAt:       handlers.FormatTime(resp.EndsAt),
		Prices:       PricesRequest{Economy: resp.Prices.Economy, Central: resp.Prices.Central, Premium: resp.Prices.Premium},
		Rows:         resp.Rows,
		Columns:      resp.Columns,
		CreatedAt:    handlers.FormatTime(resp.CreatedAt),
	}
}
