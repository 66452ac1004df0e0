package patrons

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/pkg/txmanager"
)

var (
	// ErrPatronNotFound is returned when the patron has no balance record
	ErrPatronNotFound = fmt.Errorf("patrons: patron %w", domain.ErrNotFound)

	// ErrAccessDenied is returned when a patron asks for another patron's balance
	ErrAccessDenied = fmt.Errorf("patrons: %w", domain.ErrForbidden)

	// ErrInvalidInput is returned for bad ids and non-positive amounts
	ErrInvalidInput = fmt.Errorf("patrons: %w", domain.ErrInvalidInput)

	// ErrUnavailable is returned when the store cannot be reached
	ErrUnavailable = fmt.Errorf("patrons: %w", domain.ErrUnavailable)

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("patrons: internal error")
)

func repositoryError(op string, err error) error {
	if txmanager.IsTransient(err) {
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}
