package book_seats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/internal/infra/broker"
	patronRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/patron"
	screeningRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/screening"
	venueRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/venue"
)

const afterCommitTimeout = 5 * time.Second

// UseCase reserves seats and charges the patron in one transaction
type UseCase struct {
	screeningRepo ScreeningRepository
	venueRepo     VenueRepository
	patronRepo    PatronRepository
	bookingRepo   BookingRepository
	cache         SeatMapCache
	publisher     EventPublisher
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

func NewUseCase(
	screeningRepo ScreeningRepository,
	venueRepo VenueRepository,
	patronRepo PatronRepository,
	bookingRepo BookingRepository,
	cache SeatMapCache,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		screeningRepo: screeningRepo,
		venueRepo:     venueRepo,
		patronRepo:    patronRepo,
		bookingRepo:   bookingRepo,
		cache:         cache,
		publisher:     publisher,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute books every requested seat or none of them. Concurrent calls for the same
// screening queue up on the screening row lock.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Receipt, error) {
	uc.logger.Info("Book: patron=%d, screening=%d, seats=%v", req.PatronID, req.ScreeningID, req.SeatLabels)

	// 1. Parse the selection
	seats, err := parseSelection(req)
	if err != nil {
		uc.logger.Warn("Book: validation failed: %v", err)
		return nil, err
	}

	var (
		receipt *Receipt
		seatMap *domain.SeatMap
	)

	// 2. Everything below commits together or not at all
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Lock the screening and load its grid
		screening, err := uc.screeningRepo.GetByIDForUpdate(txCtx, req.ScreeningID)
		if errors.Is(err, screeningRepo.ErrScreeningNotFound) {
			uc.logger.Warn("Book: screening id=%d not found", req.ScreeningID)
			return ErrScreeningNotFound
		}
		if err != nil {
			return storeError("get screening", err)
		}
		if err := screening.Grid.Validate(); err != nil {
			uc.logger.Error("Book: screening id=%d has a broken grid: %v", screening.ID, err)
			return fmt.Errorf("%w: %w", ErrDataIntegrity, err)
		}

		venue, err := uc.venueRepo.GetByID(txCtx, screening.VenueID)
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Error("Book: venue id=%d of screening id=%d is missing", screening.VenueID, screening.ID)
			return fmt.Errorf("%w: venue %d of screening %d is missing", ErrDataIntegrity, screening.VenueID, screening.ID)
		}
		if err != nil {
			return storeError("get venue", err)
		}

		// 2.2. All seats inside the hall and free
		grid := screening.Grid.Clone()
		if err := grid.Occupy(seats); err != nil {
			uc.logger.Warn("Book: screening id=%d: %v", screening.ID, err)
			if errors.Is(err, domain.ErrSeatUnavailable) {
				return err
			}
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		// 2.3. Each seat costs its tier price
		lines := make([]BookedSeat, len(seats))
		var total int64
		for i, seat := range seats {
			tier, price := domain.SeatPrice(screening, venue.HallStyle, seat)
			lines[i] = BookedSeat{Label: seat.Label(), Tier: tier, Amount: price}
			total += price
		}

		// 2.4. Lock the wallet
		patron, err := uc.patronRepo.GetByIDForUpdate(txCtx, req.PatronID)
		if errors.Is(err, patronRepo.ErrPatronNotFound) {
			uc.logger.Warn("Book: patron id=%d has no wallet", req.PatronID)
			return ErrPatronNotFound
		}
		if err != nil {
			return storeError("get patron", err)
		}
		if patron.Balance < total {
			uc.logger.Warn("Book: patron id=%d balance %d < total %d", patron.ID, patron.Balance, total)
			return ErrInsufficientBalance
		}

		// 2.5. Debit
		balance, err := uc.patronRepo.Debit(txCtx, patron.ID, total)
		if errors.Is(err, patronRepo.ErrInsufficientFunds) {
			return ErrInsufficientBalance
		}
		if err != nil {
			return storeError("debit", err)
		}

		// 2.6. Persist the grid
		version, err := uc.screeningRepo.UpdateGrid(txCtx, screening.ID, grid)
		if err != nil {
			return storeError("update grid", err)
		}
		booked := *screening
		booked.Grid = grid
		booked.GridVersion = version
		seatMap = domain.BuildSeatMap(&booked, venue.HallStyle)

		// 2.7. One ledger row per seat
		bookings := make([]*domain.Booking, len(lines))
		for i, line := range lines {
			bookings[i] = &domain.Booking{
				PatronID:    patron.ID,
				ScreeningID: screening.ID,
				SeatLabel:   line.Label,
				Amount:      line.Amount,
				Status:      domain.StatusConfirmed,
			}
		}
		created, err := uc.bookingRepo.CreateBatch(txCtx, bookings)
		if err != nil {
			return storeError("create bookings", err)
		}
		for i := range lines {
			lines[i].BookingID = created[i].ID
		}

		receipt = &Receipt{
			PatronID:    patron.ID,
			ScreeningID: screening.ID,
			Seats:       lines,
			Total:       total,
			Balance:     balance,
		}
		return nil
	})
	if err != nil {
		err = storeError("Book", err)
		if !domain.IsRejection(err) {
			uc.logger.Error("Book: transaction failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("Book: patron=%d booked %d seats of screening=%d, total=%d, balance=%d",
		receipt.PatronID, len(receipt.Seats), receipt.ScreeningID, receipt.Total, receipt.Balance)

	// 3. Side effects after commit never fail the booking
	uc.afterCommit(ctx, receipt, seatMap)

	return receipt, nil
}

func (uc *UseCase) afterCommit(ctx context.Context, receipt *Receipt, seatMap *domain.SeatMap) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), afterCommitTimeout)
	defer cancel()

	// the versioned write wins over readers that loaded the old grid
	if err := uc.cache.Set(ctx, seatMap); err != nil {
		uc.logger.Warn("Book: failed to cache seat map of screening id=%d: %v", receipt.ScreeningID, err)
		if err := uc.cache.Invalidate(ctx, receipt.ScreeningID); err != nil {
			uc.logger.Warn("Book: failed to invalidate seat map of screening id=%d: %v", receipt.ScreeningID, err)
		}
	}

	event := broker.BookingConfirmedEvent{
		PatronID:    receipt.PatronID,
		ScreeningID: receipt.ScreeningID,
		BookingIDs:  receipt.BookingIDs(),
		Seats:       receipt.Labels(),
		Total:       receipt.Total,
		OccurredAt:  uc.timeProvider.Now().UTC(),
	}
	if err := uc.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		uc.logger.Error("Book: failed to publish booking.confirmed for screening id=%d: %v", receipt.ScreeningID, err)
	}
}
