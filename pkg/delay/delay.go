// Package delay provides the atomic unit of concurrent work used across delayfan: an operation that
// samples a random delay, waits for it, and reports it.
//
// Both the clock and the source of randomness are injectable, so that callers needing reproducible
// behaviour (tests, seeded CLI runs) can replace them.
package delay

import (
	"context"

	"github.com/zoobzio/clockz"
)

// Operation samples a uniformly distributed delay and waits for it.
//
// Each Operation owns its source of randomness. It never shares sampling state with other operations
// unless the caller deliberately hands the same Source to several of them.
type Operation struct {
	clock  clockz.Clock
	source Source
}

// Option configures an Operation.
type Option func(*Operation)

// WithClock sets the clock used to wait. The default is clockz.RealClock.
func WithClock(clock clockz.Clock) Option {
	return func(o *Operation) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithSource sets the source of randomness. The default is DefaultSource().
func WithSource(source Source) Option {
	return func(o *Operation) {
		if source != nil {
			o.source = source
		}
	}
}

// New returns a new Operation.
func New(opts ...Option) *Operation {
	o := &Operation{clock: clockz.RealClock, source: DefaultSource()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run samples a delay d in [0, maxDelay] seconds, waits at least d and returns d.
//
// It fails with ErrInvalidArgument if maxDelay is negative or not finite, and with the context's
// error if the context is done before the wait is over. It never fails otherwise.
func (o *Operation) Run(ctx context.Context, maxDelay float64) (float64, error) {
	if err := Validate(maxDelay); err != nil {
		return 0, err
	}

	d := Uniform(o.source, maxDelay)
	if err := Sleep(ctx, o.clock, Duration(d)); err != nil {
		return 0, err
	}

	return d, nil
}

// Run executes a single operation with the default clock and source.
func Run(ctx context.Context, maxDelay float64) (float64, error) {
	return New().Run(ctx, maxDelay)
}

// Task is a handle to an operation that is already running.
type Task struct {
	done  chan struct{}
	value float64
	err   error
}

// Start launches Run on its own goroutine and returns a handle to it immediately.
func (o *Operation) Start(ctx context.Context, maxDelay float64) *Task {
	task := &Task{done: make(chan struct{})}

	go func() {
		defer close(task.done)
		task.value, task.err = o.Run(ctx, maxDelay)
	}()

	return task
}

// Done is closed when the task completes.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task completes and returns its result.
//
// If ctx is done first, Wait returns the context's error. The task itself keeps running until its
// own context, the one given to Start, is done.
func (t *Task) Wait(ctx context.Context) (float64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-t.done:
		return t.value, t.err
	}
}
