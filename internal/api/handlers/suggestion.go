package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	suggestSlot "github.com/m04kA/SMC-ShowtimeService/internal/usecase/suggest_slot"
)

// SlotSuggester finds the next free start on a screen
type SlotSuggester interface {
	Execute(ctx context.Context, req *suggestSlot.Request) (*suggestSlot.Response, error)
}

// SuggestAfterConflict looks for the next slot of the same length after a rejected start.
// Returns nil when nothing fits the day or the lookup fails.
func SuggestAfterConflict(
	ctx context.Context,
	suggester SlotSuggester,
	venueID int64,
	screenNumber int,
	start, end time.Time,
	excludeID *int64,
) *Suggestion {
	resp, err := suggester.Execute(ctx, &suggestSlot.Request{
		VenueID:            venueID,
		ScreenNumber:       screenNumber,
		After:              start,
		DurationMinutes:    int(end.Sub(start) / time.Minute),
		ExcludeScreeningID: excludeID,
	})
	if err != nil || !resp.Found {
		return nil
	}
	return &Suggestion{
		StartsAt: FormatTime(resp.StartsAt),
		EndsAt:   FormatTime(resp.EndsAt),
	}
}

// RespondConflict writes a 409 TimeConflict body carrying an optional suggestion
func RespondConflict(w http.ResponseWriter, err error, suggestion *Suggestion) {
	RespondJSON(w, http.StatusConflict, ErrorResponse{
		Error:      err.Error(),
		Reason:     domain.ReasonTimeConflict,
		Suggestion: suggestion,
	})
}
