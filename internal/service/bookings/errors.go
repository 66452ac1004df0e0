package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/pkg/txmanager"
)

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = fmt.Errorf("bookings: booking %w", domain.ErrNotFound)

	// ErrAccessDenied is returned when a patron asks for somebody else's bookings
	ErrAccessDenied = fmt.Errorf("bookings: %w", domain.ErrForbidden)

	// ErrInvalidInput is returned for bad ids, statuses and pages
	ErrInvalidInput = fmt.Errorf("bookings: %w", domain.ErrInvalidInput)

	// ErrUnavailable is returned when the store cannot be reached
	ErrUnavailable = fmt.Errorf("bookings: %w", domain.ErrUnavailable)

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("bookings: internal error")
)

func repositoryError(op string, err error) error {
	if txmanager.IsTransient(err) {
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}
