package suggest_slot

import (
	"net/http"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	suggestSlot "github.com/m04kA/SMC-ShowtimeService/internal/usecase/suggest_slot"
)

type Handler struct {
	useCase SuggestUseCase
	logger  Logger
}

func NewHandler(useCase SuggestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/screens/{screen}/next-slot?after=...&duration=120[&exclude=7]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathInt64(r, "venueId")
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	screen, err := handlers.PathInt(r, "screen")
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	after, err := handlers.ParseTime(r.URL.Query().Get("after"))
	if err != nil {
		h.logger.Warn("GET /venues/{id}/screens/{screen}/next-slot - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	duration, err := handlers.QueryUint(r, "duration")
	if err != nil || duration == 0 {
		handlers.RespondBadRequest(w, "duration must be a positive number of minutes")
		return
	}
	exclude, err := handlers.QueryUint(r, "exclude")
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	req := &suggestSlot.Request{
		VenueID:         venueID,
		ScreenNumber:    screen,
		After:           after,
		DurationMinutes: int(duration),
	}
	if exclude > 0 {
		id := int64(exclude)
		req.ExcludeScreeningID = &id
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if handlers.RespondDomainError(w, err) >= http.StatusInternalServerError {
			h.logger.Error("GET /venues/{id}/screens/{screen}/next-slot - Failed: venue_id=%d, error=%v", venueID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
