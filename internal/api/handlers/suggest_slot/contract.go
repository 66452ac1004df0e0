package suggest_slot

import (
	"context"

	suggestSlot "github.com/m04kA/SMC-ShowtimeService/internal/usecase/suggest_slot"
)

type SuggestUseCase interface {
	Execute(ctx context.Context, req *suggestSlot.Request) (*suggestSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
