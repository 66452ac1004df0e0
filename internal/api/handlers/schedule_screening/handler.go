package schedule_screening

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

const msgInvalidRequestBody = "invalid request body"

type Handler struct {
	useCase   ScheduleUseCase
	suggester handlers.SlotSuggester
	logger    Logger
}

func NewHandler(useCase ScheduleUseCase, suggester handlers.SlotSuggester, logger Logger) *Handler {
	return &Handler{
		useCase:   useCase,
		suggester: suggester,
		logger:    logger,
	}
}

// Handle POST /api/v1/screenings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ScheduleScreeningRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /screenings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /screenings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTimeConflict):
			suggestion := handlers.SuggestAfterConflict(r.Context(), h.suggester,
				useCaseReq.VenueID, useCaseReq.ScreenNumber, useCaseReq.StartsAt, useCaseReq.EndsAt, nil)
			h.logger.Warn("POST /screenings - Time conflict: venue_id=%d, screen=%d, suggestion=%v",
				req.VenueID, req.ScreenNumber, suggestion != nil)
			handlers.RespondConflict(w, err, suggestion)

		default:
			if handlers.RespondDomainError(w, err) >= http.StatusInternalServerError {
				h.logger.Error("POST /screenings - Failed to schedule: venue_id=%d, error=%v", req.VenueID, err)
			} else {
				h.logger.Warn("POST /screenings - Rejected: venue_id=%d, error=%v", req.VenueID, err)
			}
		}
		return
	}

	h.logger.Info("POST /screenings - Screening scheduled: screening_id=%d, venue_id=%d, screen=%d",
		result.ID, result.VenueID, result.ScreenNumber)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
