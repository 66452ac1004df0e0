package suggest_slot

import (
	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	suggestSlot "github.com/m04kA/SMC-ShowtimeService/internal/usecase/suggest_slot"
)

// SuggestionResponse HTTP response model; times are empty when nothing fits
type SuggestionResponse struct {
	Found    bool   `json:"found"`
	StartsAt string `json:"startsAt,omitempty"`
	EndsAt   string `json:"endsAt,omitempty"`
}

func FromUseCaseResponse(resp *suggestSlot.Response) *SuggestionResponse {
	if !resp.Found {
		return &SuggestionResponse{}
	}
	return &SuggestionResponse{
		Found:    true,
		StartsAt: handlers.FormatTime(resp.StartsAt),
		EndsAt:   handlers.FormatTime(resp.EndsAt),
	}
}
