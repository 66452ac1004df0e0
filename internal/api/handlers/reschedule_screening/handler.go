package reschedule_screening

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	rescheduleScreening "github.com/m04kA/SMC-ShowtimeService/internal/usecase/reschedule_screening"
	"github.com/m04kA/SMC-ShowtimeService/pkg/ptr"
)

const msgInvalidRequestBody = "invalid request body"

type Handler struct {
	useCase    RescheduleUseCase
	screenings ScreeningReader
	suggester  handlers.SlotSuggester
	logger     Logger
}

func NewHandler(useCase RescheduleUseCase, screenings ScreeningReader, suggester handlers.SlotSuggester, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		screenings: screenings,
		suggester:  suggester,
		logger:     logger,
	}
}

// Handle PATCH /api/v1/screenings/{screeningId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	screeningID, err := handlers.PathInt64(r, "screeningId")
	if err != nil {
		h.logger.Warn("PATCH /screenings/{id}/schedule - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /screenings/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(screeningID)
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, domain.ErrTimeConflict) {
			h.logger.Warn("PATCH /screenings/{id}/schedule - Time conflict: screening_id=%d", screeningID)
			handlers.RespondConflict(w, err, h.suggest(r, screeningID, useCaseReq))
			return
		}
		if handlers.RespondDomainError(w, err) >= http.StatusInternalServerError {
			h.logger.Error("PATCH /screenings/{id}/schedule - Failed: screening_id=%d, error=%v", screeningID, err)
		}
		return
	}

	h.logger.Info("PATCH /screenings/{id}/schedule - Screening moved: screening_id=%d", screeningID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) suggest(r *http.Request, screeningID int64, req *rescheduleScreening.Request) *handlers.Suggestion {
	screening, err := h.screenings.GetByID(r.Context(), screeningID)
	if err != nil {
		h.logger.Warn("PATCH /screenings/{id}/schedule - No suggestion, screening lookup failed: %v", err)
		return nil
	}
	return handlers.SuggestAfterConflict(r.Context(), h.suggester,
		screening.VenueID, screening.ScreenNumber, req.StartsAt, req.EndsAt, ptr.Ptr(screeningID))
}
