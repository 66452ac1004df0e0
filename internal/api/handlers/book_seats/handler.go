package book_seats

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	"github.com/m04kA/SMC-ShowtimeService/internal/api/middleware"
	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingSession     = "missing session"
)

type Handler struct {
	useCase BookUseCase
	logger  Logger
}

func NewHandler(useCase BookUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/screenings/{screeningId}/bookings
// Seats are booked for the patron of the caller's token.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	screeningID, err := handlers.PathInt64(r, "screeningId")
	if err != nil {
		h.logger.Warn("POST /screenings/{id}/bookings - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		h.logger.Warn("POST /screenings/{id}/bookings - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req BookSeatsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /screenings/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	receipt, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(session.PatronID, screeningID))
	if err != nil {
		var seatErr *domain.SeatUnavailableError
		if errors.As(err, &seatErr) {
			h.logger.Warn("POST /screenings/{id}/bookings - Seat taken: screening_id=%d, seat=%s", screeningID, seatErr.Label)
			handlers.RespondJSON(w, http.StatusConflict, newSeatConflict(seatErr))
			return
		}
		if handlers.RespondDomainError(w, err) >= http.StatusInternalServerError {
			h.logger.Error("POST /screenings/{id}/bookings - Failed: screening_id=%d, patron_id=%d, error=%v",
				screeningID, session.PatronID, err)
		} else {
			h.logger.Warn("POST /screenings/{id}/bookings - Rejected: screening_id=%d, patron_id=%d, error=%v",
				screeningID, session.PatronID, err)
		}
		return
	}

	h.logger.Info("POST /screenings/{id}/bookings - Booked: screening_id=%d, patron_id=%d, seats=%d, total=%d",
		screeningID, session.PatronID, len(receipt.Seats), receipt.Total)
	handlers.RespondJSON(w, http.StatusCreated, FromReceipt(receipt))
}
