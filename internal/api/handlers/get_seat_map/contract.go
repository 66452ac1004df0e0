package get_seat_map

import (
	"context"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

type ScreeningService interface {
	GetSeatMap(ctx context.Context, id int64) (*domain.SeatMap, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
