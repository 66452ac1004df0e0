package cancel_screenings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/pkg/txmanager"
)

var (
	// ErrScreeningNotFound is returned when the screening does not exist (or was already cancelled)
	ErrScreeningNotFound = fmt.Errorf("cancel_screenings: screening %w", domain.ErrNotFound)

	// ErrVenueNotFound is returned when the venue does not exist
	ErrVenueNotFound = fmt.Errorf("cancel_screenings: venue %w", domain.ErrNotFound)

	// ErrInvalidInput is returned for malformed ids and title references
	ErrInvalidInput = fmt.Errorf("cancel_screenings: %w", domain.ErrInvalidInput)

	// ErrTaskRejected is returned when the background runner does not accept work
	ErrTaskRejected = fmt.Errorf("cancel_screenings: task rejected: %w", domain.ErrUnavailable)

	// ErrUnavailable is returned when the store cannot be reached
	ErrUnavailable = fmt.Errorf("cancel_screenings: %w", domain.ErrUnavailable)

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("cancel_screenings: internal error")
)

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
