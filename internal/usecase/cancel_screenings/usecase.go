package cancel_screenings

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/internal/infra/broker"
	venueRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/venue"
)

const afterCommitTimeout = 10 * time.Second

// UseCase removes screenings and refunds their confirmed bookings. Every operation is one
// serializable transaction that the transaction manager re-runs as a whole on
// serialization failures; only confirmed bookings are refunded, so a re-run never pays twice.
type UseCase struct {
	screeningRepo ScreeningRepository
	venueRepo     VenueRepository
	bookingRepo   BookingRepository
	patronRepo    PatronRepository
	cache         SeatMapCache
	publisher     EventPublisher
	runner        TaskRunner
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

func NewUseCase(
	screeningRepo ScreeningRepository,
	venueRepo VenueRepository,
	bookingRepo BookingRepository,
	patronRepo PatronRepository,
	cache SeatMapCache,
	publisher EventPublisher,
	runner TaskRunner,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		screeningRepo: screeningRepo,
		venueRepo:     venueRepo,
		bookingRepo:   bookingRepo,
		patronRepo:    patronRepo,
		cache:         cache,
		publisher:     publisher,
		runner:        runner,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// CancelScreening refunds and removes one screening
func (uc *UseCase) CancelScreening(ctx context.Context, screeningID int64) (*Result, error) {
	const op = "CancelScreening"
	uc.logger.Info("%s: screening=%d", op, screeningID)

	if err := validateID("screening", screeningID); err != nil {
		return nil, err
	}

	return uc.run(ctx, op, func(txCtx context.Context) (*Result, error) {
		return uc.cancelInTx(txCtx, op, []int64{screeningID})
	})
}

// CancelAllScreeningsOfTitle refunds and removes every screening of a film or live event
func (uc *UseCase) CancelAllScreeningsOfTitle(ctx context.Context, title domain.TitleRef) (*Result, error) {
	const op = "CancelAllScreeningsOfTitle"
	uc.logger.Info("%s: title=%s", op, title)

	if err := validateTitle(title); err != nil {
		return nil, err
	}

	return uc.run(ctx, op, func(txCtx context.Context) (*Result, error) {
		ids, err := uc.screeningRepo.ListIDsByTitle(txCtx, title)
		if err != nil {
			return nil, storeError("list screenings of title", err)
		}
		return uc.cancelInTx(txCtx, op, ids)
	})
}

// CancelAllScreeningsOfVenue refunds and removes every screening held at a venue
func (uc *UseCase) CancelAllScreeningsOfVenue(ctx context.Context, venueID int64) (*Result, error) {
	const op = "CancelAllScreeningsOfVenue"
	uc.logger.Info("%s: venue=%d", op, venueID)

	if err := validateID("venue", venueID); err != nil {
		return nil, err
	}

	return uc.run(ctx, op, func(txCtx context.Context) (*Result, error) {
		return uc.cancelVenueInTx(txCtx, op, venueID)
	})
}

// DeleteVenue cancels the venue's screenings with refunds and removes the venue
func (uc *UseCase) DeleteVenue(ctx context.Context, venueID int64) (*Result, error) {
	const op = "DeleteVenue"
	uc.logger.Info("%s: venue=%d", op, venueID)

	if err := validateID("venue", venueID); err != nil {
		return nil, err
	}

	return uc.run(ctx, op, func(txCtx context.Context) (*Result, error) {
		result, err := uc.cancelVenueInTx(txCtx, op, venueID)
		if err != nil {
			return nil, err
		}
		err = uc.venueRepo.Delete(txCtx, venueID)
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		if err != nil {
			return nil, storeError("delete venue", err)
		}
		result.VenueDeleted = true
		return result, nil
	})
}

// cancelVenueInTx locks the venue first so nothing new gets scheduled there meanwhile
func (uc *UseCase) cancelVenueInTx(ctx context.Context, op string, venueID int64) (*Result, error) {
	_, err := uc.venueRepo.GetByIDForUpdate(ctx, venueID)
	if errors.Is(err, venueRepo.ErrVenueNotFound) {
		uc.logger.Warn("%s: venue id=%d not found", op, venueID)
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, storeError("get venue", err)
	}

	ids, err := uc.screeningRepo.ListIDsByVenue(ctx, venueID)
	if err != nil {
		return nil, storeError("list screenings of venue", err)
	}
	return uc.cancelInTx(ctx, op, ids)
}

func (uc *UseCase) run(ctx context.Context, op string, fn func(txCtx context.Context) (*Result, error)) (*Result, error) {
	var result *Result
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		result, err = fn(txCtx)
		return err
	})
	if err != nil {
		err = storeError(op, err)
		if !domain.IsRejection(err) {
			uc.logger.Error("%s: transaction failed: %v", op, err)
		}
		return nil, err
	}

	uc.logger.Info("%s: removed %d screenings, refunded %d bookings for %d to %d patrons",
		op, len(result.Screenings), result.RefundedBookings, result.RefundedAmount, result.PatronsCredited)

	uc.afterCommit(ctx, op, result)
	return result, nil
}

func (uc *UseCase) afterCommit(ctx context.Context, op string, result *Result) {
	if len(result.Screenings) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), afterCommitTimeout)
	defer cancel()

	if err := uc.cache.Invalidate(ctx, result.ScreeningIDs()...); err != nil {
		uc.logger.Warn("%s: failed to invalidate seat maps: %v", op, err)
	}

	now := uc.timeProvider.Now().UTC()
	for _, s := range result.Screenings {
		event := broker.ScreeningCancelledEvent{
			ScreeningID:      s.ID,
			VenueID:          s.VenueID,
			TitleKind:        string(s.Title.Kind),
			TitleID:          s.Title.ID,
			RefundedBookings: s.RefundedBookings,
			RefundedAmount:   s.RefundedAmount,
			OccurredAt:       now,
		}
		if err := uc.publisher.PublishScreeningCancelled(ctx, event); err != nil {
			uc.logger.Error("%s: failed to publish screening.cancelled for screening id=%d: %v", op, s.ID, err)
		}
	}
}
