package cancel_venue_screenings

import (
	"net/http"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
)

type Handler struct {
	useCase VenueCanceller
	logger  Logger
}

func NewHandler(useCase VenueCanceller, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/venues/{venueId}/screenings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathInt64(r, "venueId")
	if err != nil {
		h.logger.Warn("DELETE /venues/{id}/screenings - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	task, err := h.useCase.SubmitCancelVenue(venueID)
	if err != nil {
		h.logger.Error("DELETE /venues/{id}/screenings - Failed to submit: venue_id=%d, error=%v", venueID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("DELETE /venues/{id}/screenings - Cancellation queued: venue_id=%d, task_id=%s", venueID, task.ID)
	w.Header().Set("Location", "/api/v1/tasks/"+task.ID)
	handlers.RespondJSON(w, http.StatusAccepted, handlers.FromTask(task, handlers.TaskResult))
}
