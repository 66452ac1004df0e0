package book_seats

import (
	"context"

	bookSeats "github.com/m04kA/SMC-ShowtimeService/internal/usecase/book_seats"
)

type BookUseCase interface {
	Execute(ctx context.Context, req *bookSeats.Request) (*bookSeats.Receipt, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
