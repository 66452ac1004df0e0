package top_up

import (
	"net/http"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/patrons/models"
)

const msgInvalidRequestBody = "invalid request body"

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

// Handle POST /api/v1/patrons/{patronId}/top-up (operators only)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patronID, err := handlers.PathInt64(r, "patronId")
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	var req models.TopUpRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /patrons/{id}/top-up - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.PatronID = patronID

	balance, err := h.service.TopUp(r.Context(), &req)
	if err != nil {
		if handlers.RespondDomainError(w, err) >= http.StatusInternalServerError {
			h.logger.Error("POST /patrons/{id}/top-up - Failed: patron_id=%d, error=%v", patronID, err)
		} else {
			h.logger.Warn("POST /patrons/{id}/top-up - Rejected: patron_id=%d, error=%v", patronID, err)
		}
		return
	}

	h.logger.Info("POST /patrons/{id}/top-up - Credited: patron_id=%d, amount=%d, balance=%d",
		patronID, req.Amount, balance.Balance)
	handlers.RespondJSON(w, http.StatusOK, balance)
}
