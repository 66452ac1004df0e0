package get_task

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
)

const msgTaskNotFound = "task not found"

type Handler struct {
	runner TaskReader
	logger Logger
}

func NewHandler(runner TaskReader, logger Logger) *Handler {
	return &Handler{
		runner: runner,
		logger: logger,
	}
}

// Handle GET /api/v1/tasks/{taskId}
// Finished tasks are kept for the configured retention and then forgotten.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]

	task, ok := h.runner.Get(taskID)
	if !ok {
		h.logger.Warn("GET /tasks/{id} - Task not found: task_id=%s", taskID)
		handlers.RespondNotFound(w, msgTaskNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromTask(task, handlers.TaskResult))
}
