package patrons

import (
	"context"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

// PatronRepository owns patron balances
type PatronRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Patron, error)
	TopUp(ctx context.Context, id int64, amount int64) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
