package get_patron_bookings

import (
	"context"

	"github.com/m04kA/SMC-ShowtimeService/internal/service/bookings/models"
)

type BookingService interface {
	GetPatronBookings(ctx context.Context, req *models.GetPatronBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
