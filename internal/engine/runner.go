package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrStopped is returned by Do once the runner has stopped.
var ErrStopped = errors.New("engine runner stopped")

type job struct {
	fn   func(*Engine)
	done chan struct{}
}

// Runner owns an Engine on a single goroutine. Control cycles run from a
// ticker at the engine's update rate; interactive changes submitted with Do
// run between cycles, never during one.
type Runner struct {
	engine   *Engine
	interval time.Duration
	jobs     chan job
	stopped  chan struct{}
	logger   *slog.Logger
}

// NewRunner creates a runner for e. It does nothing until Run is called.
func NewRunner(e *Engine) *Runner {
	return &Runner{
		engine:   e,
		interval: time.Duration(float64(time.Second) / e.opts.UpdateRate),
		jobs:     make(chan job),
		stopped:  make(chan struct{}),
		logger:   e.logger,
	}
}

// Run drives the engine until ctx is cancelled. The attached controller is
// blacked out before Run returns.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.stopped)
	defer r.engine.Detach()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("engine running", "rate_hz", r.engine.opts.UpdateRate)
	dt := r.interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("engine stopping")
			return nil
		case <-ticker.C:
			r.engine.Cycle(dt)
		case j := <-r.jobs:
			j.fn(r.engine)
			close(j.done)
		}
	}
}

// Do runs fn on the engine goroutine between two cycles and waits for it.
func (r *Runner) Do(ctx context.Context, fn func(*Engine)) error {
	j := job{fn: fn, done: make(chan struct{})}
	select {
	case r.jobs <- j:
	case <-r.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stopped is closed once Run has returned.
func (r *Runner) Stopped() <-chan struct{} {
	return r.stopped
}
