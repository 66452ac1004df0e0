package screenings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	seatmapCache "github.com/m04kA/SMC-ShowtimeService/internal/infra/cache/seatmap"
	screeningRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/screening"
	venueRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/screenings/models"
)

// Service answers read queries about screenings
type Service struct {
	screeningRepo ScreeningRepository
	venueRepo     VenueRepository
	cache         SeatMapCache
	location      *time.Location
	logger        Logger
}

// NewService creates the screenings read service. Calendar dates are taken in loc.
func NewService(
	screeningRepo ScreeningRepository,
	venueRepo VenueRepository,
	cache SeatMapCache,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		screeningRepo: screeningRepo,
		venueRepo:     venueRepo,
		cache:         cache,
		location:      loc,
		logger:        logger,
	}
}

// GetByID returns screening details
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ScreeningResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: screening id must be positive", ErrInvalidInput)
	}

	screening, err := s.getScreening(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainScreening(screening), nil
}

// GetSeatMap returns every seat of the screening with tier, price and availability.
// Seat maps are served from the cache when present; cache failures fall back to the store.
func (s *Service) GetSeatMap(ctx context.Context, id int64) (*domain.SeatMap, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: screening id must be positive", ErrInvalidInput)
	}

	cached, err := s.cache.Get(ctx, id)
	switch {
	case err == nil:
		return cached, nil
	case errors.Is(err, seatmapCache.ErrCacheMiss):
	default:
		s.logger.Warn("GetSeatMap: cache read failed for screening id=%d: %v", id, err)
	}

	screening, err := s.getScreening(ctx, "GetSeatMap", id)
	if err != nil {
		return nil, err
	}

	venue, err := s.venueRepo.GetByID(ctx, screening.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Error("GetSeatMap: screening id=%d references missing venue id=%d", id, screening.VenueID)
			return nil, fmt.Errorf("%w: venue %d of screening %d", ErrDataIntegrity, screening.VenueID, id)
		}
		s.logger.Error("GetSeatMap: failed to load venue id=%d: %v", screening.VenueID, err)
		return nil, repositoryError("GetSeatMap", err)
	}

	if err := screening.Grid.Validate(); err != nil {
		s.logger.Error("GetSeatMap: malformed grid of screening id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %w", ErrDataIntegrity, err)
	}

	seatMap := domain.BuildSeatMap(screening, venue.HallStyle)
	if err := s.cache.Set(ctx, seatMap); err != nil {
		s.logger.Warn("GetSeatMap: failed to cache seat map of screening id=%d: %v", id, err)
	}

	return seatMap, nil
}

// ListByScreenOnDate lists screenings of a venue screen starting on the calendar date of req.Date
func (s *Service) ListByScreenOnDate(ctx context.Context, req *models.ListRequest) (*models.ScreeningListResponse, error) {
	s.logger.Info("ListByScreenOnDate: venue=%d, screen=%d, date=%s",
		req.VenueID, req.ScreenNumber, req.Date.In(s.location).Format(domain.DateFormat))

	if req.VenueID <= 0 || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: venue id and date are required", ErrInvalidInput)
	}

	venue, err := s.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("ListByScreenOnDate: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("ListByScreenOnDate: failed to load venue id=%d: %v", req.VenueID, err)
		return nil, repositoryError("ListByScreenOnDate", err)
	}
	if !venue.HasScreen(req.ScreenNumber) {
		return nil, fmt.Errorf("%w: venue %d has no screen %d", ErrInvalidInput, venue.ID, req.ScreenNumber)
	}

	from, to := domain.DayBounds(req.Date, s.location)
	list, err := s.screeningRepo.ListByScreenBetween(ctx, req.VenueID, req.ScreenNumber, from, to)
	if err != nil {
		s.logger.Error("ListByScreenOnDate: repository error for venue=%d screen=%d: %v", req.VenueID, req.ScreenNumber, err)
		return nil, repositoryError("ListByScreenOnDate", err)
	}

	resp := &models.ScreeningListResponse{
		VenueID:      req.VenueID,
		ScreenNumber: req.ScreenNumber,
		Date:         from.Format(domain.DateFormat),
		Screenings:   make([]*models.ScreeningResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, sc := range list {
		resp.Screenings = append(resp.Screenings, models.FromDomainScreening(sc))
	}

	s.logger.Info("ListByScreenOnDate: found %d screenings", resp.Total)
	return resp, nil
}

func (s *Service) getScreening(ctx context.Context, op string, id int64) (*domain.Screening, error) {
	screening, err := s.screeningRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, screeningRepo.ErrScreeningNotFound) {
			s.logger.Warn("%s: screening id=%d not found", op, id)
			return nil, ErrScreeningNotFound
		}
		s.logger.Error("%s: repository error for screening id=%d: %v", op, id, err)
		return nil, repositoryError(op, err)
	}
	return screening, nil
}
