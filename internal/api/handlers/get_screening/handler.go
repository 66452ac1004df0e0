package get_screening

import (
	"net/http"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
)

type Handler struct {
	service ScreeningService
	logger  Logger
}

func NewHandler(service ScreeningService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/screenings/{screeningId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	screeningID, err := handlers.PathInt64(r, "screeningId")
	if err != nil {
		h.logger.Warn("GET /screenings/{id} - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	screening, err := h.service.GetByID(r.Context(), screeningID)
	if err != nil {
		if handlers.RespondDomainError(w, err) >= http.StatusInternalServerError {
			h.logger.Error("GET /screenings/{id} - Failed: screening_id=%d, error=%v", screeningID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, screening)
}
