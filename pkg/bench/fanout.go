// Package bench runs units of timed work concurrently and measures them.
//
// FanOut launches many random-delay operations at once and returns their results in the order they
// completed. Aggregate drains several streaming sources in parallel. Measure and
// MeasureAggregateRuntime wrap both with clock readings to derive timing statistics.
package bench

import (
	"context"
	"fmt"
	"sync"

	"github.com/shivanshkc/delayfan/pkg/delay"
)

// Func is a single unit of concurrent work.
type Func[T any] func(ctx context.Context) (T, error)

// outcome is what a worker publishes once its work returns.
type outcome[T any] struct {
	value T
	err   error
}

// Gather runs fn n times concurrently and returns the values in the order the calls completed.
//
// The first error cancels the context passed to every other call, Gather waits for all of them to
// return, and then reports that error without any partial results. Cancellation of ctx is handled
// the same way.
func Gather[T any](ctx context.Context, n int, fn Func[T], opts ...Option) ([]T, error) {
	if err := validateCount(n); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: nil function", ErrInvalidArgument)
	}

	return gather(ctx, n, func(ctx context.Context, _ int) (T, error) { return fn(ctx) }, newConfig(opts))
}

// FanOut runs n delay operations concurrently, each waiting a random delay in [0, maxDelay] seconds,
// and returns the sampled delays in completion order.
//
// The result is ordered by when each operation finished, which is not necessarily ascending.
// For n = 0 it returns an empty batch without waiting.
func FanOut(ctx context.Context, n int, maxDelay float64, opts ...Option) ([]float64, error) {
	if err := validateCount(n); err != nil {
		return nil, err
	}
	if err := delay.Validate(maxDelay); err != nil {
		return nil, err
	}

	cfg := newConfig(opts)
	return gather(ctx, n, func(ctx context.Context, i int) (float64, error) {
		// Every operation owns its sampling state.
		op := delay.New(delay.WithClock(cfg.clock), delay.WithSource(cfg.sourceFor(i)))
		return op.Run(ctx, maxDelay)
	}, cfg)
}

// gather is the completion-ordered fan-out behind Gather and FanOut. fn receives the submission
// index of the call.
func gather[T any](ctx context.Context, n int, fn func(context.Context, int) (T, error), cfg config) ([]T, error) {
	results := make([]T, 0, n)
	if n == 0 {
		return results, nil
	}

	// Context for managing local goroutines.
	localCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Every worker publishes exactly once, so this buffer never blocks a worker,
	// even after the collector has stopped listening.
	outcomes := make(chan outcome[T], n)

	// Tracks the launcher and every worker. No goroutine outlives this call.
	var wg sync.WaitGroup

	publish := func(i int) {
		value, err := fn(localCtx, i)
		outcomes <- outcome[T]{value: value, err: err}
	}

	if cfg.limit == 0 || cfg.limit >= n {
		// Unbounded: every operation starts before any result is awaited.
		wg.Add(n)
		for i := range n {
			go func() {
				defer wg.Done()
				publish(i)
			}()
		}
	} else {
		// This channel makes sure only `limit` operations execute concurrently at a given time.
		semaphore := make(chan struct{}, cfg.limit)

		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range n {
				select {
				// Either an operation failed or the parent context was canceled.
				case <-localCtx.Done():
					return
				// Acquire a spot.
				case semaphore <- struct{}{}:
				}

				wg.Add(1)
				go func() {
					defer wg.Done()
					// Release the spot for the next operation.
					defer func() { <-semaphore }()
					publish(i)
				}()
			}
		}()
	}

	// abort stops every sibling and waits for all of them before the error is reported.
	abort := func(err error) ([]T, error) {
		cancel()
		wg.Wait()
		return nil, err
	}

	// Collect results in completion order.
	for done := 0; done < n; done++ {
		select {
		case <-ctx.Done():
			return abort(fmt.Errorf("fan-out interrupted after %d/%d completions: %w", done, n, ctx.Err()))
		case o := <-outcomes:
			if o.err != nil {
				return abort(fmt.Errorf("operation failed after %d/%d completions: %w", done, n, o.err))
			}
			results = append(results, o.value)
			cfg.reportProgress(done+1, n)
		}
	}

	wg.Wait()
	return results, nil
}

func validateCount(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: operation count must not be negative, got %d", ErrInvalidArgument, n)
	}
	return nil
}
