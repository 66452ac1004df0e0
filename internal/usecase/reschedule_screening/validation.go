package reschedule_screening

import (
	"fmt"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.StartsAt.IsZero() || req.EndsAt.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !req.EndsAt.After(req.StartsAt) {
		return ErrInvalidInterval
	}
	if req.EndsAt.Sub(req.StartsAt) > domain.MaxScreeningDuration {
		return fmt.Errorf("%w: screening longer than %s", ErrInvalidInterval, domain.MaxScreeningDuration)
	}
	if req.ScreeningID <= 0 {
		return fmt.Errorf("%w: screening id must be positive", ErrInvalidInput)
	}
	return nil
}
