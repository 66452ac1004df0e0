package get_patron_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	"github.com/m04kA/SMC-ShowtimeService/internal/api/middleware"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/bookings/models"
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

// Handle GET /api/v1/patrons/{patronId}/bookings?status=confirmed&limit=20&offset=0
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patronID, err := handlers.PathInt64(r, "patronId")
	if err != nil {
		h.logger.Warn("GET /patrons/{id}/bookings - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	req := &models.GetPatronBookingsRequest{
		Session:  session,
		PatronID: patronID,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}
	if req.Limit, err = handlers.QueryUint(r, "limit"); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	if req.Offset, err = handlers.QueryUint(r, "offset"); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	resp, err := h.service.GetPatronBookings(r.Context(), req)
	if err != nil {
		if handlers.RespondDomainError(w, err) >= http.StatusInternalServerError {
			h.logger.Error("GET /patrons/{id}/bookings - Failed: patron_id=%d, error=%v", patronID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
