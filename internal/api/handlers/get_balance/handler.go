package get_balance

import (
	"net/http"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	"github.com/m04kA/SMC-ShowtimeService/internal/api/middleware"
)

const msgMissingSession = "missing session"

type Handler struct {
	service PatronService
	logger  Logger
}

func NewHandler(service PatronService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/patrons/{patronId}/balance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patronID, err := handlers.PathInt64(r, "patronId")
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	balance, err := h.service.GetBalance(r.Context(), patronID, session)
	if err != nil {
		if handlers.RespondDomainError(w, err) >= http.StatusInternalServerError {
			h.logger.Error("GET /patrons/{id}/balance - Failed: patron_id=%d, error=%v", patronID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, balance)
}
