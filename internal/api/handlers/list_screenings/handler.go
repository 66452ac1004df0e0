package list_screenings

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/screenings/models"
)

type Handler struct {
	service ScreeningService
	loc     *time.Location
	logger  Logger
}

// NewHandler creates the handler; dates are read as calendar days in loc
func NewHandler(service ScreeningService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/screens/{screen}/screenings?date=2024-03-10
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathInt64(r, "venueId")
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	screen, err := handlers.PathInt(r, "screen")
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /venues/{id}/screens/{screen}/screenings - Missing date")
		handlers.RespondBadRequest(w, "date query parameter is required")
		return
	}
	date, err := time.ParseInLocation(domain.DateFormat, rawDate, h.loc)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/screens/{screen}/screenings - Invalid date %q", rawDate)
		handlers.RespondBadRequest(w, "invalid date, expected YYYY-MM-DD")
		return
	}

	resp, err := h.service.ListByScreenOnDate(r.Context(), &models.ListRequest{
		VenueID:      venueID,
		ScreenNumber: screen,
		Date:         date,
	})
	if err != nil {
		if handlers.RespondDomainError(w, err) >= http.StatusInternalServerError {
			h.logger.Error("GET /venues/{id}/screens/{screen}/screenings - Failed: venue_id=%d, error=%v", venueID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
