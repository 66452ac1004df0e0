package suggest_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInterval)
	}
	if time.Duration(req.DurationMinutes)*time.Minute > domain.MaxScreeningDuration {
		return fmt.Errorf("%w: duration longer than %s", ErrInvalidInterval, domain.MaxScreeningDuration)
	}
	if req.After.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venue id must be positive", ErrInvalidInput)
	}
	return nil
}
