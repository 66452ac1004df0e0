package venues

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	venueRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/venues/models"
)

// Service manages venues. Deleting a venue is a cascade and lives in cancel_screenings.
type Service struct {
	venueRepo VenueRepository
	logger    Logger
}

// NewService creates the venues service
func NewService(venueRepo VenueRepository, logger Logger) *Service {
	return &Service{
		venueRepo: venueRepo,
		logger:    logger,
	}
}

// Create validates and stores a venue
func (s *Service) Create(ctx context.Context, req *models.CreateVenueRequest) (*models.VenueResponse, error) {
	s.logger.Info("Create: creating venue name=%q city=%q screens=%d grid=%dx%d",
		req.Name, req.City, req.Screens, req.Rows, req.Columns)

	venue := req.ToDomainVenue()
	if err := validateVenue(venue); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.venueRepo.Create(ctx, venue)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, repositoryError("Create", err)
	}

	s.logger.Info("Create: successfully created venue id=%d", created.ID)
	return models.FromDomainVenue(created), nil
}

// GetByID returns a venue
func (s *Service) GetByID(ctx context.Context, id int64) (*models.VenueResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: venue id must be positive", ErrInvalidInput)
	}

	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("GetByID: venue id=%d not found", id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("GetByID: repository error for venue id=%d: %v", id, err)
		return nil, repositoryError("GetByID", err)
	}

	return models.FromDomainVenue(venue), nil
}

// ListByCity returns the venues of a city
func (s *Service) ListByCity(ctx context.Context, city string) (*models.VenueListResponse, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", ErrInvalidInput)
	}

	list, err := s.venueRepo.ListByCity(ctx, city)
	if err != nil {
		s.logger.Error("ListByCity: repository error for city=%q: %v", city, err)
		return nil, repositoryError("ListByCity", err)
	}

	s.logger.Info("ListByCity: found %d venues in %q", len(list), city)
	return models.FromDomainVenueList(list), nil
}

func validateVenue(v *domain.Venue) error {
	switch {
	case v.City == "":
		return fmt.Errorf("%w: city is required", ErrInvalidInput)
	case v.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case !v.HallStyle.IsValid():
		return fmt.Errorf("%w: unknown hall style %q", ErrInvalidInput, v.HallStyle)
	case v.Screens < 1 || v.Screens > domain.MaxScreens:
		return fmt.Errorf("%w: screens must be between 1 and %d", ErrInvalidInput, domain.MaxScreens)
	case v.Rows < domain.MinGridRows || v.Rows > domain.MaxGridRows:
		return fmt.Errorf("%w: rows must be between %d and %d", ErrInvalidInput, domain.MinGridRows, domain.MaxGridRows)
	case v.Columns < domain.MinGridColumns || v.Columns > domain.MaxGridColumns:
		return fmt.Errorf("%w: columns must be between %d and %d", ErrInvalidInput, domain.MinGridColumns, domain.MaxGridColumns)
	}
	return nil
}
