package create_venue

import (
	"net/http"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/venues/models"
)

const msgInvalidRequestBody = "invalid request body"

type Handler struct {
	service VenueService
	logger  Logger
}

func NewHandler(service VenueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVenueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	venue, err := h.service.Create(r.Context(), &req)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("POST /venues - Failed to create venue: %v", err)
		} else {
			h.logger.Warn("POST /venues - Rejected: %v", err)
		}
		return
	}

	h.logger.Info("POST /venues - Venue created: venue_id=%d", venue.ID)
	handlers.RespondJSON(w, http.StatusCreated, venue)
}
