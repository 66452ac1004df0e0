package taskrunner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countingRecorder struct {
	mu       sync.Mutex
	started  int
	finished map[string]int
}

func (c *countingRecorder) TaskStarted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started++
}

func (c *countingRecorder) TaskFinished(_ string, status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.finished == nil {
		c.finished = map[string]int{}
	}
	c.finished[status]++
}

func TestRunner_SubmitAndWait(t *testing.T) {
	rec := &countingRecorder{}
	r := New(2, time.Minute, nopLogger{}, WithRecorder(rec))

	callback := make(chan Task, 1)
	task, err := r.Submit("cancel_title", func(ctx context.Context) (interface{}, error) {
		return 42, nil
	}, func(t Task) { callback <- t })
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "cancel_title", task.Name)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	done, err := r.Wait(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, done.Status)
	assert.Equal(t, 42, done.Result)
	assert.True(t, done.Done())
	assert.NotNil(t, done.FinishedAt)

	select {
	case got := <-callback:
		assert.Equal(t, task.ID, got.ID)
		assert.Equal(t, StatusSucceeded, got.Status)
	case <-time.After(time.Second):
		t.Fatal("completion callback was not called")
	}

	require.NoError(t, r.Shutdown(context.Background()))
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, 1, rec.started)
	assert.Equal(t, 1, rec.finished["succeeded"])
}

func TestRunner_FailedTask(t *testing.T) {
	r := New(1, time.Minute, nopLogger{})

	task, err := r.Submit("cancel_venue", func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("store unavailable")
	}, nil)
	require.NoError(t, err)

	done, err := r.Wait(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, done.Status)
	assert.Equal(t, "store unavailable", done.Error)
}

func TestRunner_PanicBecomesFailure(t *testing.T) {
	r := New(1, time.Minute, nopLogger{})

	task, err := r.Submit("explode", func(ctx context.Context) (interface{}, error) {
		panic("boom")
	}, nil)
	require.NoError(t, err)

	done, err := r.Wait(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, done.Status)
	assert.Contains(t, done.Error, "boom")
}

func TestRunner_GetUnknown(t *testing.T) {
	r := New(1, time.Minute, nopLogger{})

	_, ok := r.Get("missing")
	assert.False(t, ok)

	_, err := r.Wait(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestRunner_SubmitAfterShutdown(t *testing.T) {
	r := New(1, time.Minute, nopLogger{})
	require.NoError(t, r.Shutdown(context.Background()))

	_, err := r.Submit("late", func(ctx context.Context) (interface{}, error) { return nil, nil }, nil)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRunner_PrunesFinishedTasks(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	r := New(1, time.Minute, nopLogger{}, WithClock(clock))

	first, err := r.Submit("first", func(ctx context.Context) (interface{}, error) { return nil, nil }, nil)
	require.NoError(t, err)
	_, err = r.Wait(context.Background(), first.ID)
	require.NoError(t, err)

	mu.Lock()
	now = now.Add(2 * time.Minute)
	mu.Unlock()

	second, err := r.Submit("second", func(ctx context.Context) (interface{}, error) { return nil, nil }, nil)
	require.NoError(t, err)

	_, ok := r.Get(first.ID)
	assert.False(t, ok)
	_, ok = r.Get(second.ID)
	assert.True(t, ok)
}

func TestRunner_WaitReturnsFinalTaskWhenPrunedMeanwhile(t *testing.T) {
	var mu sync.Mutex
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
	r := New(4, time.Nanosecond, nopLogger{}, WithClock(clock))
	defer func() { _ = r.Shutdown(context.Background()) }()

	noop := func(ctx context.Context) (interface{}, error) { return nil, nil }

	for i := 0; i < 200; i++ {
		release := make(chan struct{})
		// the follow-up submit prunes the finished task right after it completes
		task, err := r.Submit("first", func(ctx context.Context) (interface{}, error) {
			<-release
			return "ok", nil
		}, func(Task) {
			_, _ = r.Submit("next", noop, nil)
		})
		require.NoError(t, err)

		go close(release)
		got, err := r.Wait(context.Background(), task.ID)
		if err != nil {
			assert.ErrorIs(t, err, ErrTaskNotFound)
			continue
		}
		require.Equal(t, task.ID, got.ID)
		require.Equal(t, StatusSucceeded, got.Status)
		require.Equal(t, "ok", got.Result)
	}
}
