package schedule_screening

import (
	"fmt"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

// validateInterval checks start < end and a sane duration
func validateInterval(req *Request) error {
	if req.StartsAt.IsZero() || req.EndsAt.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !req.EndsAt.After(req.StartsAt) {
		return ErrInvalidInterval
	}
	if req.EndsAt.Sub(req.StartsAt) > domain.MaxScreeningDuration {
		return fmt.Errorf("%w: screening longer than %s", ErrInvalidInterval, domain.MaxScreeningDuration)
	}
	return nil
}

// validateRequest checks the request shape
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venue id must be positive", ErrInvalidInput)
	}
	if !req.Title.Kind.IsValid() {
		return fmt.Errorf("%w: unknown title kind %q", ErrInvalidInput, req.Title.Kind)
	}
	if req.Title.ID <= 0 {
		return fmt.Errorf("%w: title id must be positive", ErrInvalidInput)
	}
	return nil
}

// validateAgainstVenue checks the screen number and prices once the venue is known
func validateAgainstVenue(req *Request, venue *domain.Venue) error {
	if !venue.HasScreen(req.ScreenNumber) {
		return fmt.Errorf("%w: venue %d has no screen %d", ErrInvalidInput, venue.ID, req.ScreenNumber)
	}
	if !req.Prices.IsValid() {
		return fmt.Errorf("%w: prices must not be negative", ErrInvalidInput)
	}
	return nil
}
