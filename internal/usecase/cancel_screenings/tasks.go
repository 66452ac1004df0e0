package cancel_screenings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/pkg/taskrunner"
)

// Task names
const (
	TaskCancelScreening = "cancel_screening"
	TaskCancelTitle     = "cancel_title"
	TaskCancelVenue     = "cancel_venue"
	TaskDeleteVenue     = "delete_venue"
)

// SubmitCancelScreening runs CancelScreening in the background
func (uc *UseCase) SubmitCancelScreening(screeningID int64) (taskrunner.Task, error) {
	if err := validateID("screening", screeningID); err != nil {
		return taskrunner.Task{}, err
	}
	return uc.submit(TaskCancelScreening, func(ctx context.Context) (*Result, error) {
		return uc.CancelScreening(ctx, screeningID)
	})
}

// SubmitCancelTitle runs CancelAllScreeningsOfTitle in the background
func (uc *UseCase) SubmitCancelTitle(title domain.TitleRef) (taskrunner.Task, error) {
	if err := validateTitle(title); err != nil {
		return taskrunner.Task{}, err
	}
	return uc.submit(TaskCancelTitle, func(ctx context.Context) (*Result, error) {
		return uc.CancelAllScreeningsOfTitle(ctx, title)
	})
}

// SubmitCancelVenue runs CancelAllScreeningsOfVenue in the background
func (uc *UseCase) SubmitCancelVenue(venueID int64) (taskrunner.Task, error) {
	if err := validateID("venue", venueID); err != nil {
		return taskrunner.Task{}, err
	}
	return uc.submit(TaskCancelVenue, func(ctx context.Context) (*Result, error) {
		return uc.CancelAllScreeningsOfVenue(ctx, venueID)
	})
}

// SubmitDeleteVenue runs DeleteVenue in the background
func (uc *UseCase) SubmitDeleteVenue(venueID int64) (taskrunner.Task, error) {
	if err := validateID("venue", venueID); err != nil {
		return taskrunner.Task{}, err
	}
	return uc.submit(TaskDeleteVenue, func(ctx context.Context) (*Result, error) {
		return uc.DeleteVenue(ctx, venueID)
	})
}

func (uc *UseCase) submit(name string, fn func(ctx context.Context) (*Result, error)) (taskrunner.Task, error) {
	task, err := uc.runner.Submit(name, func(ctx context.Context) (interface{}, error) {
		result, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return result, nil
	}, func(t taskrunner.Task) {
		uc.logger.Info("%s: task id=%s finished with status %s", name, t.ID, t.Status)
	})
	if err != nil {
		uc.logger.Error("%s: failed to submit task: %v", name, err)
		return taskrunner.Task{}, fmt.Errorf("%w: %w", ErrTaskRejected, err)
	}

	uc.logger.Info("%s: submitted task id=%s", name, task.ID)
	return task, nil
}
