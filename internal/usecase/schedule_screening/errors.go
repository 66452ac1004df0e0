package schedule_screening

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ShowtimeService/pkg/txmanager"
)

var (
	// ErrInvalidInterval is returned when the screening does not end after it starts
	ErrInvalidInterval = fmt.Errorf("schedule_screening: %w", domain.ErrInvalidInterval)

	// ErrInvalidInput is returned for malformed requests, unknown screens and negative prices
	ErrInvalidInput = fmt.Errorf("schedule_screening: %w", domain.ErrInvalidInput)

	// ErrVenueNotFound is returned when the venue does not exist
	ErrVenueNotFound = fmt.Errorf("schedule_screening: venue %w", domain.ErrNotFound)

	// ErrTitleNotFound is returned when the catalog does not know the title
	ErrTitleNotFound = fmt.Errorf("schedule_screening: title %w", domain.ErrNotFound)

	// ErrTimeConflict is returned when the screen is busy during the interval
	ErrTimeConflict = fmt.Errorf("schedule_screening: %w", domain.ErrTimeConflict)

	// ErrTitleAlreadyInCity is returned when the title already plays in the city that day
	ErrTitleAlreadyInCity = fmt.Errorf("schedule_screening: %w", domain.ErrTitleAlreadyInCity)

	// ErrUnavailable is returned when the store or the catalog cannot be reached
	ErrUnavailable = fmt.Errorf("schedule_screening: %w", domain.ErrUnavailable)

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("schedule_screening: internal error")
)

// storeError classifies a failure that is not a business rejection
func storeError(op string, err error) error {
	switch {
	case domain.IsRejection(err), errors.Is(err, ErrInternal), errors.Is(err, ErrUnavailable):
		return err
	case txmanager.IsTransient(err):
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
	}
}

// catalogError retries only failures to reach the catalog; a bad answer stays internal
func catalogError(err error) error {
	if errors.Is(err, catalogservice.ErrInternal) {
		return fmt.Errorf("%w: catalog: %w", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: catalog: %w", ErrInternal, err)
}
