package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/bookings/models"
)

// Service reads the bookings ledger
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService creates the bookings read service
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID returns a booking. Patrons only see their own bookings, operators see all.
func (s *Service) GetByID(ctx context.Context, id int64, session domain.Session) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for patron=%d role=%s", id, session.PatronID, session.Role)

	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, repositoryError("GetByID", err)
	}

	if !session.CanAccessPatron(booking.PatronID) {
		s.logger.Warn("GetByID: access denied for patron=%d to booking id=%d", session.PatronID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetPatronBookings returns the booking history of a patron, optionally filtered by status
func (s *Service) GetPatronBookings(ctx context.Context, req *models.GetPatronBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetPatronBookings: fetching bookings for patron=%d, status=%v", req.PatronID, req.Status)

	if req.PatronID <= 0 {
		return nil, fmt.Errorf("%w: patron id must be positive", ErrInvalidInput)
	}
	if req.Limit > models.MaxPageSize {
		return nil, fmt.Errorf("%w: limit must not exceed %d", ErrInvalidInput, models.MaxPageSize)
	}

	if !req.Session.CanAccessPatron(req.PatronID) {
		s.logger.Warn("GetPatronBookings: access denied for patron=%d to history of patron=%d", req.Session.PatronID, req.PatronID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPatronBookings: invalid status=%v for patron=%d", req.Status, req.PatronID)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetPatronBookings: repository error for patron=%d: %v", req.PatronID, err)
		return nil, repositoryError("GetPatronBookings", err)
	}

	s.logger.Info("GetPatronBookings: successfully fetched %d bookings for patron=%d", len(bookings), req.PatronID)
	return models.FromDomainBookingList(bookings), nil
}
