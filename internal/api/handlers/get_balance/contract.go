package get_balance

import (
	"context"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/patrons/models"
)

type PatronService interface {
	GetBalance(ctx context.Context, patronID int64, session domain.Session) (*models.BalanceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
