package list_venues

import (
	"net/http"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
)

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

// Handle GET /api/v1/venues?city=Mumbai
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")

	venues, err := h.service.ListByCity(r.Context(), city)
	if err != nil {
		if handlers.RespondDomainError(w, err) >= http.StatusInternalServerError {
			h.logger.Error("GET /venues - Failed to list venues: city=%q, error=%v", city, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, venues)
}
