package cancel_screenings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/internal/infra/broker"
	"github.com/m04kA/SMC-ShowtimeService/pkg/taskrunner"
)

type ScreeningRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Screening, error)
	ListIDsByTitle(ctx context.Context, title domain.TitleRef) ([]int64, error)
	ListIDsByVenue(ctx context.Context, venueID int64) ([]int64, error)
	Delete(ctx context.Context, id int64) error
}

type VenueRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Venue, error)
	Delete(ctx context.Context, id int64) error
}

type BookingRepository interface {
	ListConfirmedByScreening(ctx context.Context, screeningID int64) ([]*domain.Booking, error)
	MarkRefunded(ctx context.Context, ids []int64) (int64, error)
}

type PatronRepository interface {
	Credit(ctx context.Context, id int64, amount int64) (int64, error)
	TopUp(ctx context.Context, id int64, amount int64) (int64, error)
}

// SeatMapCache drops seat maps of removed screenings
type SeatMapCache interface {
	Invalidate(ctx context.Context, screeningIDs ...int64) error
}

// EventPublisher announces cancelled screenings
type EventPublisher interface {
	PublishScreeningCancelled(ctx context.Context, event broker.ScreeningCancelledEvent) error
}

// TaskRunner runs cascades in the background
type TaskRunner interface {
	Submit(name string, fn taskrunner.Func, onDone func(taskrunner.Task)) (taskrunner.Task, error)
}

type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
