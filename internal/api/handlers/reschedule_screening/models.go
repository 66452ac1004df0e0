package reschedule_screening

import (
	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	rescheduleScreening "github.com/m04kA/SMC-ShowtimeService/internal/usecase/reschedule_screening"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	StartsAt string `json:"startsAt"` // RFC 3339
	EndsAt   string `json:"endsAt"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID           int64  `json:"id"`
	VenueID      int64  `json:"venueId"`
	ScreenNumber int    `json:"screenNumber"`
	TitleKind    string `json:"titleKind"`
	TitleID      int64  `json:"titleId"`
	StartsAt     string `json:"startsAt"`
	EndsAt       string `json:"endsAt"`
	Occupied     int    `json:"occupied"`
	UpdatedAt    string `json:"updatedAt"`
}

// ToUseCaseRequest parses timestamps
func (r *RescheduleRequest) ToUseCaseRequest(screeningID int64) (*rescheduleScreening.Request, error) {
	startsAt, err := handlers.ParseTime(r.StartsAt)
	if err != nil {
		return nil, err
	}
	endsAt, err := handlers.ParseTime(r.EndsAt)
	if err != nil {
		return nil, err
	}
	return &rescheduleScreening.Request{
		ScreeningID: screeningID,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
	}, nil
}

// FromUseCaseResponse converts the moved screening
func FromUseCaseResponse(resp *rescheduleScreening.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:           resp.ID,
		VenueID:      resp.VenueID,
		ScreenNumber: resp.ScreenNumber,
		TitleKind:    string(resp.Title.Kind),
		TitleID:      resp.Title.ID,
		StartsAt:     handlers.FormatTime(resp.StartsAt),
		EndsAt:       handlers.FormatTime(resp.EndsAt),
		Occupied:     resp.Occupied,
		UpdatedAt:    handlers.FormatTime(resp.UpdatedAt),
	}
}
