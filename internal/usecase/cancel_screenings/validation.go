package cancel_screenings

import (
	"fmt"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

func validateID(name string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s id must be positive", ErrInvalidInput, name)
	}
	return nil
}

func validateTitle(title domain.TitleRef) error {
	if !title.Kind.IsValid() {
		return fmt.Errorf("%w: unknown title kind %q", ErrInvalidInput, title.Kind)
	}
	return validateID("title", title.ID)
}
