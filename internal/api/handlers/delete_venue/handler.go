package delete_venue

import (
	"net/http"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
)

type Handler struct {
	useCase VenueRemover
	logger  Logger
}

func NewHandler(useCase VenueRemover, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/venues/{venueId}
// Responds 202 with a task; poll GET /api/v1/tasks/{taskId} for the refund summary.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathInt64(r, "venueId")
	if err != nil {
		h.logger.Warn("DELETE /venues/{id} - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	task, err := h.useCase.SubmitDeleteVenue(venueID)
	if err != nil {
		h.logger.Error("DELETE /venues/{id} - Failed to submit: venue_id=%d, error=%v", venueID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("DELETE /venues/{id} - Deletion queued: venue_id=%d, task_id=%s", venueID, task.ID)
	w.Header().Set("Location", "/api/v1/tasks/"+task.ID)
	handlers.RespondJSON(w, http.StatusAccepted, handlers.FromTask(task, handlers.TaskResult))
}
