package venues

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/pkg/txmanager"
)

var (
	// ErrVenueNotFound is returned when the venue does not exist
	ErrVenueNotFound = fmt.Errorf("venues: venue %w", domain.ErrNotFound)

	// ErrInvalidInput is returned for malformed venue data
	ErrInvalidInput = fmt.Errorf("venues: %w", domain.ErrInvalidInput)

	// ErrUnavailable is returned when the store cannot be reached
	ErrUnavailable = fmt.Errorf("venues: %w", domain.ErrUnavailable)

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("venues: internal error")
)

func repositoryError(op string, err error) error {
	if txmanager.IsTransient(err) {
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}
