package top_up

import (
	"context"

	"github.com/m04kA/SMC-ShowtimeService/internal/service/patrons/models"
)

type PatronService interface {
	TopUp(ctx context.Context, req *models.TopUpRequest) (*models.BalanceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
