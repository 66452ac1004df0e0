package reschedule_screening

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	screeningRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/screening"
	venueRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/venue"
)

// UseCase moves an existing screening. The seat grid and bookings are left as they are.
type UseCase struct {
	venueRepo     VenueRepository
	screeningRepo ScreeningRepository
	checker       ConflictChecker
	txManager     TransactionManager
	logger        Logger
}

func NewUseCase(
	venueRepo VenueRepository,
	screeningRepo ScreeningRepository,
	checker ConflictChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		venueRepo:     venueRepo,
		screeningRepo: screeningRepo,
		checker:       checker,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute applies the scheduling rules to the new interval, ignoring the screening itself
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Reschedule: screening=%d, start=%s, end=%s",
		req.ScreeningID, req.StartsAt.Format(time.RFC3339), req.EndsAt.Format(time.RFC3339))

	// 1. Validation
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Reschedule: validation failed: %v", err)
		return nil, err
	}

	var moved *domain.Screening

	// 2. Checks and update in one serializable transaction
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Find the venue of the screening
		current, err := uc.screeningRepo.GetByID(txCtx, req.ScreeningID)
		if errors.Is(err, screeningRepo.ErrScreeningNotFound) {
			uc.logger.Warn("Reschedule: screening id=%d not found", req.ScreeningID)
			return ErrScreeningNotFound
		}
		if err != nil {
			return storeError("get screening", err)
		}

		// 2.2. Venue before screening, the order every cascade uses
		venue, err := uc.venueRepo.GetByIDForUpdate(txCtx, current.VenueID)
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("Reschedule: venue id=%d of screening id=%d not found", current.VenueID, current.ID)
			return ErrVenueNotFound
		}
		if err != nil {
			return storeError("get venue", err)
		}

		screening, err := uc.screeningRepo.GetByIDForUpdate(txCtx, req.ScreeningID)
		if errors.Is(err, screeningRepo.ErrScreeningNotFound) {
			uc.logger.Warn("Reschedule: screening id=%d was removed", req.ScreeningID)
			return ErrScreeningNotFound
		}
		if err != nil {
			return storeError("lock screening", err)
		}

		exclude := &screening.ID

		// 2.3. Screen must be free, not counting this screening
		conflict, err := uc.checker.HasConflict(txCtx, venue.ID, screening.ScreenNumber, req.StartsAt, req.EndsAt, exclude)
		if err != nil {
			return fmt.Errorf("HasConflict: %w", err)
		}
		if conflict {
			uc.logger.Warn("Reschedule: screen %d of venue %d is busy", screening.ScreenNumber, venue.ID)
			return ErrTimeConflict
		}

		// 2.4. Title rule on the new date
		taken, err := uc.checker.HasTitleOnDate(txCtx, venue.City, screening.Title, req.StartsAt, exclude)
		if err != nil {
			return fmt.Errorf("HasTitleOnDate: %w", err)
		}
		if taken {
			uc.logger.Warn("Reschedule: title %s already screened in %s on that date", screening.Title, venue.City)
			return ErrTitleAlreadyInCity
		}

		// 2.5. Update in place
		updatedAt, err := uc.screeningRepo.UpdateInterval(txCtx, screening.ID, req.StartsAt, req.EndsAt)
		if err != nil {
			return fmt.Errorf("update interval: %w", err)
		}

		screening.StartsAt = req.StartsAt
		screening.EndsAt = req.EndsAt
		screening.UpdatedAt = updatedAt
		moved = screening
		return nil
	})
	if err != nil {
		err = storeError("Reschedule", err)
		if !domain.IsRejection(err) {
			uc.logger.Error("Reschedule: transaction failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("Reschedule: screening id=%d moved", moved.ID)

	return &Response{
		ID:           moved.ID,
		VenueID:      moved.VenueID,
		ScreenNumber: moved.ScreenNumber,
		Title:        moved.Title,
		StartsAt:     moved.StartsAt,
		EndsAt:       moved.EndsAt,
		Occupied:     moved.Grid.Occupancy(),
		UpdatedAt:    moved.UpdatedAt,
	}, nil
}
