package suggest_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	venueRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/conflicts"
)

// UseCase suggests the next free start time on a screen. The answer is advisory:
// the title rule is not checked and nothing is reserved.
type UseCase struct {
	venueRepo VenueRepository
	schedules ScheduleReader
	txManager TransactionManager
	location  *time.Location
	logger    Logger
}

func NewUseCase(
	venueRepo VenueRepository,
	schedules ScheduleReader,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		venueRepo: venueRepo,
		schedules: schedules,
		txManager: txManager,
		location:  location,
		logger:    logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SuggestNextSlot: venue=%d, screen=%d, after=%s, duration=%dm",
		req.VenueID, req.ScreenNumber, req.After.Format(time.RFC3339), req.DurationMinutes)

	// 1. Validation
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SuggestNextSlot: validation failed: %v", err)
		return nil, err
	}

	var schedule conflicts.Schedule

	// 2. One consistent read of the venue and the screen
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		venue, err := uc.venueRepo.GetByID(txCtx, req.VenueID)
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("SuggestNextSlot: venue id=%d not found", req.VenueID)
			return ErrVenueNotFound
		}
		if err != nil {
			return fmt.Errorf("get venue: %w", err)
		}
		if !venue.HasScreen(req.ScreenNumber) {
			return fmt.Errorf("%w: venue %d has no screen %d", ErrInvalidInput, venue.ID, req.ScreenNumber)
		}

		schedule, err = uc.schedules.ScreenSchedule(txCtx, venue.ID, req.ScreenNumber, req.ExcludeScreeningID)
		if err != nil {
			return fmt.Errorf("load schedule: %w", err)
		}
		return nil
	})
	if err != nil {
		err = storeError("SuggestNextSlot", err)
		if !domain.IsRejection(err) {
			uc.logger.Error("SuggestNextSlot: %v", err)
		}
		return nil, err
	}

	// 3. Probe
	duration := time.Duration(req.DurationMinutes) * time.Minute
	start, found := firstFreeSlot(schedule, candidateStarts(req.After, uc.location), duration)
	if !found {
		uc.logger.Info("SuggestNextSlot: no free slot left on venue=%d screen=%d", req.VenueID, req.ScreenNumber)
		return &Response{Found: false}, nil
	}

	uc.logger.Info("SuggestNextSlot: suggesting %s", start.Format(time.RFC3339))
	return &Response{
		Found:    true,
		StartsAt: start,
		EndsAt:   start.Add(duration),
	}, nil
}
