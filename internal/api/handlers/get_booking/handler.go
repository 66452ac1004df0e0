package get_booking

import (
	"net/http"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	"github.com/m04kA/SMC-ShowtimeService/internal/api/middleware"
)

const msgMissingSession = "missing session"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	// the service checks ownership
	booking, err := h.service.GetByID(r.Context(), bookingID, session)
	if err != nil {
		switch status := handlers.RespondDomainError(w, err); {
		case status >= http.StatusInternalServerError:
			h.logger.Error("GET /bookings/{id} - Failed: booking_id=%d, error=%v", bookingID, err)
		case status == http.StatusForbidden:
			h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%d, patron_id=%d", bookingID, session.PatronID)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, booking)
}
