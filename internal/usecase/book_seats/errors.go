package book_seats

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/pkg/txmanager"
)

var (
	// ErrEmptySelection is returned when no seat was requested
	ErrEmptySelection = fmt.Errorf("book_seats: %w", domain.ErrEmptySelection)

	// ErrInvalidInput is returned for malformed labels and seats outside the hall
	ErrInvalidInput = fmt.Errorf("book_seats: %w", domain.ErrInvalidInput)

	// ErrScreeningNotFound is returned when the screening does not exist
	ErrScreeningNotFound = fmt.Errorf("book_seats: screening %w", domain.ErrNotFound)

	// ErrPatronNotFound is returned when the patron has no wallet
	ErrPatronNotFound = fmt.Errorf("book_seats: patron %w", domain.ErrNotFound)

	// ErrInsufficientBalance is returned when the wallet cannot pay the total
	ErrInsufficientBalance = fmt.Errorf("book_seats: %w", domain.ErrInsufficientBalance)

	// ErrDataIntegrity is returned when the stored grid or venue is inconsistent
	ErrDataIntegrity = fmt.Errorf("book_seats: %w", domain.ErrDataIntegrity)

	// ErrUnavailable is returned when the store cannot be reached
	ErrUnavailable = fmt.Errorf("book_seats: %w", domain.ErrUnavailable)

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("book_seats: internal error")
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
