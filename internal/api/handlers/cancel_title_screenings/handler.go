package cancel_title_screenings

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

type Handler struct {
	useCase TitleCanceller
	logger  Logger
}

func NewHandler(useCase TitleCanceller, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/titles/{kind}/{titleId}/screenings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind := domain.TitleKind(mux.Vars(r)["kind"])
	if !kind.IsValid() {
		h.logger.Warn("DELETE /titles/{kind}/{id}/screenings - Invalid title kind %q", kind)
		handlers.RespondBadRequest(w, "invalid title kind")
		return
	}
	titleID, err := handlers.PathInt64(r, "titleId")
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	title := domain.TitleRef{Kind: kind, ID: titleID}
	task, err := h.useCase.SubmitCancelTitle(title)
	if err != nil {
		h.logger.Error("DELETE /titles/{kind}/{id}/screenings - Failed to submit: title=%s, error=%v", title, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("DELETE /titles/{kind}/{id}/screenings - Cancellation queued: title=%s, task_id=%s", title, task.ID)
	w.Header().Set("Location", "/api/v1/tasks/"+task.ID)
	handlers.RespondJSON(w, http.StatusAccepted, handlers.FromTask(task, handlers.TaskResult))
}
