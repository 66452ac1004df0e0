package screenings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/pkg/txmanager"
)

var (
	// ErrScreeningNotFound is returned when the screening does not exist
	ErrScreeningNotFound = fmt.Errorf("screenings: screening %w", domain.ErrNotFound)

	// ErrVenueNotFound is returned when the venue does not exist
	ErrVenueNotFound = fmt.Errorf("screenings: venue %w", domain.ErrNotFound)

	// ErrInvalidInput is returned for bad ids, screens and dates
	ErrInvalidInput = fmt.Errorf("screenings: %w", domain.ErrInvalidInput)

	// ErrDataIntegrity is returned when a screening references a missing venue
	ErrDataIntegrity = fmt.Errorf("screenings: %w", domain.ErrDataIntegrity)

	// ErrUnavailable is returned when the store cannot be reached
	ErrUnavailable = fmt.Errorf("screenings: %w", domain.ErrUnavailable)

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("screenings: internal error")
)

func repositoryError(op string, err error) error {
	if txmanager.IsTransient(err) {
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}
