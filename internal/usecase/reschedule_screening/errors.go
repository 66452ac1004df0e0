package reschedule_screening

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/pkg/txmanager"
)

var (
	ErrInvalidInterval    = fmt.Errorf("reschedule_screening: %w", domain.ErrInvalidInterval)
	ErrInvalidInput       = fmt.Errorf("reschedule_screening: %w", domain.ErrInvalidInput)
	ErrScreeningNotFound  = fmt.Errorf("reschedule_screening: screening %w", domain.ErrNotFound)
	ErrVenueNotFound      = fmt.Errorf("reschedule_screening: venue %w", domain.ErrNotFound)
	ErrTimeConflict       = fmt.Errorf("reschedule_screening: %w", domain.ErrTimeConflict)
	ErrTitleAlreadyInCity = fmt.Errorf("reschedule_screening: %w", domain.ErrTitleAlreadyInCity)
	ErrUnavailable        = fmt.Errorf("reschedule_screening: %w", domain.ErrUnavailable)
	ErrInternal           = errors.New("reschedule_screening: internal error")
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
