package suggest_slot

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/pkg/txmanager"
)

var (
	ErrInvalidInterval = fmt.Errorf("suggest_slot: %w", domain.ErrInvalidInterval)
	ErrInvalidInput    = fmt.Errorf("suggest_slot: %w", domain.ErrInvalidInput)
	ErrVenueNotFound   = fmt.Errorf("suggest_slot: venue %w", domain.ErrNotFound)
	ErrUnavailable     = fmt.Errorf("suggest_slot: %w", domain.ErrUnavailable)
	ErrInternal        = errors.New("suggest_slot: internal error")
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
