package schedule_screening

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	venueRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/venue"
)

// UseCase publishes new screenings
type UseCase struct {
	venueRepo     VenueRepository
	screeningRepo ScreeningRepository
	checker       ConflictChecker
	catalog       CatalogClient
	txManager     TransactionManager
	logger        Logger
}

func NewUseCase(
	venueRepo VenueRepository,
	screeningRepo ScreeningRepository,
	checker ConflictChecker,
	catalog CatalogClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		venueRepo:     venueRepo,
		screeningRepo: screeningRepo,
		checker:       checker,
		catalog:       catalog,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute creates a screening with an empty seat grid if the screen is free and the
// title does not already play in the venue's city on that date.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ScheduleNew: venue=%d, screen=%d, title=%s, start=%s, end=%s",
		req.VenueID, req.ScreenNumber, req.Title, req.StartsAt.Format(time.RFC3339), req.EndsAt.Format(time.RFC3339))

	// 1. Interval and request shape
	if err := validateInterval(req); err != nil {
		uc.logger.Warn("ScheduleNew: invalid interval: %v", err)
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ScheduleNew: validation failed: %v", err)
		return nil, err
	}

	// 2. Venue exists
	if _, err := uc.loadVenue(ctx, req.VenueID, false); err != nil {
		return nil, err
	}

	// 3. Title exists in the catalog
	exists, err := uc.catalog.TitleExists(ctx, req.Title)
	if err != nil {
		uc.logger.Error("ScheduleNew: catalog lookup for title %s failed: %v", req.Title, err)
		return nil, catalogError(err)
	}
	if !exists {
		uc.logger.Warn("ScheduleNew: title %s not found", req.Title)
		return nil, ErrTitleNotFound
	}

	var created *domain.Screening

	// 4. Checks and insert in one serializable transaction; the venue row lock
	// serializes schedulers of the same venue
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Lock the venue
		venue, err := uc.loadVenue(txCtx, req.VenueID, true)
		if err != nil {
			return err
		}

		// 4.2. Screen number and prices
		if err := validateAgainstVenue(req, venue); err != nil {
			uc.logger.Warn("ScheduleNew: %v", err)
			return err
		}

		// 4.3. Screen must be free
		conflict, err := uc.checker.HasConflict(txCtx, venue.ID, req.ScreenNumber, req.StartsAt, req.EndsAt, nil)
		if err != nil {
			return fmt.Errorf("HasConflict: %w", err)
		}
		if conflict {
			uc.logger.Warn("ScheduleNew: screen %d of venue %d is busy", req.ScreenNumber, venue.ID)
			return ErrTimeConflict
		}

		// 4.4. One screening of a title per city per date
		taken, err := uc.checker.HasTitleOnDate(txCtx, venue.City, req.Title, req.StartsAt, nil)
		if err != nil {
			return fmt.Errorf("HasTitleOnDate: %w", err)
		}
		if taken {
			uc.logger.Warn("ScheduleNew: title %s already screened in %s on that date", req.Title, venue.City)
			return ErrTitleAlreadyInCity
		}

		// 4.5. Insert with an empty grid
		created, err = uc.screeningRepo.Create(txCtx, &domain.Screening{
			VenueID:      venue.ID,
			ScreenNumber: req.ScreenNumber,
			Title:        req.Title,
			StartsAt:     req.StartsAt,
			EndsAt:       req.EndsAt,
			Grid:         domain.NewSeatGrid(venue.Rows, venue.Columns),
			Prices:       req.Prices,
		})
		if err != nil {
			return fmt.Errorf("create screening: %w", err)
		}
		return nil
	})
	if err != nil {
		err = storeError("ScheduleNew", err)
		if !domain.IsRejection(err) {
			uc.logger.Error("ScheduleNew: transaction failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("ScheduleNew: created screening id=%d", created.ID)

	return &Response{
		ID:           created.ID,
		VenueID:      created.VenueID,
		ScreenNumber: created.ScreenNumber,
		Title:        created.Title,
		StartsAt:     created.StartsAt,
		EndsAt:       created.EndsAt,
		Prices:       created.Prices,
		Rows:         created.Grid.Rows(),
		Columns:      created.Grid.Columns(),
		CreatedAt:    created.CreatedAt,
	}, nil
}

func (uc *UseCase) loadVenue(ctx context.Context, id int64, lock bool) (*domain.Venue, error) {
	var (
		venue *domain.Venue
		err   error
	)
	if lock {
		venue, err = uc.venueRepo.GetByIDForUpdate(ctx, id)
	} else {
		venue, err = uc.venueRepo.GetByID(ctx, id)
	}
	if errors.Is(err, venueRepo.ErrVenueNotFound) {
		uc.logger.Warn("ScheduleNew: venue id=%d not found", id)
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, storeError("get venue", err)
	}
	return venue, nil
}
