package cancel_screening

import (
	"net/http"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
)

type Handler struct {
	useCase ScreeningCanceller
	logger  Logger
}

func NewHandler(useCase ScreeningCanceller, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/screenings/{screeningId}[?async=true]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	screeningID, err := handlers.PathInt64(r, "screeningId")
	if err != nil {
		h.logger.Warn("DELETE /screenings/{id} - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	async, err := handlers.QueryBool(r, "async")
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	if async {
		task, err := h.useCase.SubmitCancelScreening(screeningID)
		if err != nil {
			h.logger.Error("DELETE /screenings/{id} - Failed to submit: screening_id=%d, error=%v", screeningID, err)
			handlers.RespondDomainError(w, err)
			return
		}
		h.logger.Info("DELETE /screenings/{id} - Cancellation queued: screening_id=%d, task_id=%s", screeningID, task.ID)
		w.Header().Set("Location", "/api/v1/tasks/"+task.ID)
		handlers.RespondJSON(w, http.StatusAccepted, handlers.FromTask(task, handlers.TaskResult))
		return
	}

	result, err := h.useCase.CancelScreening(r.Context(), screeningID)
	if err != nil {
		if handlers.RespondDomainError(w, err) >= http.StatusInternalServerError {
			h.logger.Error("DELETE /screenings/{id} - Failed: screening_id=%d, error=%v", screeningID, err)
		} else {
			h.logger.Warn("DELETE /screenings/{id} - Rejected: screening_id=%d, error=%v", screeningID, err)
		}
		return
	}

	h.logger.Info("DELETE /screenings/{id} - Screening cancelled: screening_id=%d, refunded=%d",
		screeningID, result.RefundedBookings)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromCascadeResult(result))
}
