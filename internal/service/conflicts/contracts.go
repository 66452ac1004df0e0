package conflicts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

// ScreeningRepository is the read side the checker needs
type ScreeningRepository interface {
	ListIntervalsByScreen(ctx context.Context, venueID int64, screenNumber int, excludeID *int64) ([]domain.Interval, error)
	ExistsTitleInCity(ctx context.Context, city string, title domain.TitleRef, from, to time.Time, excludeID *int64) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
