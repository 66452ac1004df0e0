// Package taskrunner runs long operations in the background and keeps their outcome
// for polling. Every submitted task gets a uuid and a completion channel.
package taskrunner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

var (
	ErrTaskNotFound = errors.New("taskrunner: task not found")
	ErrClosed       = errors.New("taskrunner: runner is shut down")
)

// Func is the unit of work. The context is cancelled only when the runner is forced to stop.
type Func func(ctx context.Context) (interface{}, error)

// Task is a snapshot of a submitted task.
type Task struct {
	ID          string
	Name        string
	Status      Status
	Result      interface{}
	Error       string
	SubmittedAt time.Time
	StartedAt   *time.Time
	FinishedAt  *time.Time
}

// Done reports whether the task has finished.
func (t Task) Done() bool {
	return t.Status == StatusSucceeded || t.Status == StatusFailed
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Recorder receives task lifecycle events, e.g. *metrics.Metrics.
type Recorder interface {
	TaskStarted()
	TaskFinished(task string, status string)
}

type entry struct {
	task Task
	done chan struct{}
}

type Runner struct {
	mu        sync.RWMutex
	tasks     map[string]*entry
	closed    bool
	sem       chan struct{}
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	retention time.Duration
	logger    Logger
	recorder  Recorder
	now       func() time.Time
}

type Option func(*Runner)

func WithRecorder(rec Recorder) Option {
	return func(r *Runner) {
		r.recorder = rec
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// New creates a runner executing at most maxConcurrent tasks at once.
// Finished tasks are forgotten after retention.
func New(maxConcurrent int, retention time.Duration, logger Logger, opts ...Option) *Runner {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{
		tasks:     make(map[string]*entry),
		sem:       make(chan struct{}, maxConcurrent),
		ctx:       ctx,
		cancel:    cancel,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Submit schedules fn. onDone, when not nil, is called with the final snapshot.
func (r *Runner) Submit(name string, fn Func, onDone func(Task)) (Task, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return Task{}, ErrClosed
	}
	r.pruneLocked()

	e := &entry{
		task: Task{
			ID:          uuid.NewString(),
			Name:        name,
			Status:      StatusPending,
			SubmittedAt: r.now(),
		},
		done: make(chan struct{}),
	}
	r.tasks[e.task.ID] = e
	r.wg.Add(1)
	snapshot := e.task
	r.mu.Unlock()

	r.logger.Info("taskrunner: submitted task id=%s name=%s", snapshot.ID, name)
	go r.execute(e, fn, onDone)

	return snapshot, nil
}

func (r *Runner) execute(e *entry, fn Func, onDone func(Task)) {
	defer r.wg.Done()

	select {
	case r.sem <- struct{}{}:
		defer func() { <-r.sem }()
	case <-r.ctx.Done():
		r.finish(e, nil, r.ctx.Err(), onDone)
		return
	}

	r.mu.Lock()
	started := r.now()
	e.task.Status = StatusRunning
	e.task.StartedAt = &started
	r.mu.Unlock()

	if r.recorder != nil {
		r.recorder.TaskStarted()
	}

	result, err := r.call(fn)
	r.finish(e, result, err, onDone)
}

func (r *Runner) call(fn Func) (result interface{}, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("taskrunner: task panicked: %v", p)
		}
	}()
	return fn(r.ctx)
}

func (r *Runner) finish(e *entry, result interface{}, err error, onDone func(Task)) {
	r.mu.Lock()
	finished := r.now()
	wasRunning := e.task.Status == StatusRunning
	e.task.FinishedAt = &finished
	e.task.Result = result
	if err != nil {
		e.task.Status = StatusFailed
		e.task.Error = err.Error()
	} else {
		e.task.Status = StatusSucceeded
	}
	snapshot := e.task
	close(e.done)
	r.mu.Unlock()

	if r.recorder != nil && wasRunning {
		r.recorder.TaskFinished(snapshot.Name, string(snapshot.Status))
	}

	if err != nil {
		r.logger.Error("taskrunner: task id=%s name=%s failed: %v", snapshot.ID, snapshot.Name, err)
	} else {
		r.logger.Info("taskrunner: task id=%s name=%s succeeded", snapshot.ID, snapshot.Name)
	}

	if onDone != nil {
		onDone(snapshot)
	}
}

// Get returns the current snapshot of a task.
func (r *Runner) Get(id string) (Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.tasks[id]
	if !ok {
		return Task{}, false
	}
	return e.task, true
}

// Wait blocks until the task finishes or ctx is done.
func (r *Runner) Wait(ctx context.Context, id string) (Task, error) {
	r.mu.RLock()
	e, ok := r.tasks[id]
	r.mu.RUnlock()
	if !ok {
		return Task{}, ErrTaskNotFound
	}

	select {
	case <-e.done:
		// the entry may already be pruned from r.tasks
		r.mu.RLock()
		task := e.task
		r.mu.RUnlock()
		return task, nil
	case <-ctx.Done():
		return Task{}, ctx.Err()
	}
}

// Shutdown stops accepting tasks and waits for running ones. When ctx expires first,
// task contexts are cancelled and ctx.Err() is returned.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancel()
		return nil
	case <-ctx.Done():
		r.cancel()
		return ctx.Err()
	}
}

func (r *Runner) pruneLocked() {
	if r.retention <= 0 {
		return
	}
	cutoff := r.now().Add(-r.retention)
	for id, e := range r.tasks {
		if e.task.FinishedAt != nil && e.task.FinishedAt.Before(cutoff) {
			delete(r.tasks, id)
		}
	}
}
