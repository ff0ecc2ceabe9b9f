package bench

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/shivanshkc/delayfan/pkg/generator"
	"github.com/shivanshkc/delayfan/pkg/streams"
)

// AggregateResult is the outcome of draining several streaming sources in parallel.
type AggregateResult struct {
	// ID identifies the run.
	ID string
	// Values holds every value of every source: source 0's values first, in the order it produced
	// them, then source 1's, and so on.
	Values []float64
	// PerSource holds the values of each source separately.
	PerSource [][]float64
	// Elapsed is the clock time from launching the first source to joining the last one.
	Elapsed time.Duration
	// TTFV, TBV and TT summarise time to first value, time between values and total time per source.
	TTFV, TBV, TT Metrics
}

// SourceOpener opens the i-th streaming source of an aggregation.
type SourceOpener func(i int) *streams.Stream[generator.Sample]

// Aggregate drains `concurrency` independent streaming sources concurrently and collects all their
// values once every source is exhausted.
//
// If a source fails, the others are canceled and joined before the error is returned.
// WithLimit caps how many sources are drained at the same time.
func Aggregate(ctx context.Context, concurrency int, opts ...Option) (AggregateResult, error) {
	if err := validateConcurrency(concurrency); err != nil {
		return AggregateResult{}, err
	}

	cfg := newConfig(opts)
	return aggregate(ctx, concurrency, func(i int) *streams.Stream[generator.Sample] {
		return generator.New(
			generator.WithClock(cfg.clock),
			generator.WithSource(cfg.sourceFor(i)),
			generator.WithInterval(cfg.interval),
		).Stream()
	}, cfg)
}

// AggregateFrom is Aggregate over sources supplied by open instead of fresh generators.
// WithClock, WithLimit and WithProgress apply as they do for Aggregate. WithSeed and
// WithStepInterval have no effect, since open builds the sources.
func AggregateFrom(ctx context.Context, concurrency int, open SourceOpener, opts ...Option) (AggregateResult, error) {
	if err := validateConcurrency(concurrency); err != nil {
		return AggregateResult{}, err
	}
	if open == nil {
		return AggregateResult{}, fmt.Errorf("%w: nil source opener", ErrInvalidArgument)
	}
	return aggregate(ctx, concurrency, open, newConfig(opts))
}

func aggregate(ctx context.Context, concurrency int, open SourceOpener, cfg config) (AggregateResult, error) {
	// Each worker writes only its own slot.
	results := make(runs, concurrency)

	// Progress is reported from the workers, so it needs its own counter.
	var mu sync.Mutex
	var finished int

	group, groupCtx := errgroup.WithContext(ctx)
	if cfg.limit > 0 {
		group.SetLimit(cfg.limit)
	}

	start := cfg.clock.Now()
	for i := range concurrency {
		// Blocks while the limit is reached.
		group.Go(func() error {
			run, err := drain(groupCtx, cfg.clock, open(i))
			if err != nil {
				return fmt.Errorf("source %d failed: %w", i, err)
			}
			results[i] = run

			mu.Lock()
			defer mu.Unlock()
			finished++
			cfg.reportProgress(finished, concurrency)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return AggregateResult{}, err
	}
	elapsed := cfg.clock.Now().Sub(start)

	perSource := make([][]float64, concurrency)
	flat := make([]float64, 0, concurrency*generator.Steps)
	for i, run := range results {
		perSource[i] = run.values
		flat = append(flat, run.values...)
	}

	return AggregateResult{
		ID:        uuid.NewString(),
		Values:    flat,
		PerSource: perSource,
		Elapsed:   elapsed,
		TTFV:      results.firstValue().Metrics(),
		TBV:       results.betweenValues().Metrics(),
		TT:        results.total().Metrics(),
	}, nil
}

// AggregateStreams returns the flattened values of Aggregate.
func AggregateStreams(ctx context.Context, concurrency int, opts ...Option) ([]float64, error) {
	result, err := Aggregate(ctx, concurrency, opts...)
	if err != nil {
		return nil, err
	}
	return result.Values, nil
}

// MeasureAggregateRuntime returns how long Aggregate took to drain all sources.
//
// Since the sources run concurrently, this approximates the run time of a single source rather
// than the sum over all of them.
func MeasureAggregateRuntime(ctx context.Context, concurrency int, opts ...Option) (time.Duration, error) {
	result, err := Aggregate(ctx, concurrency, opts...)
	if err != nil {
		return 0, err
	}
	return result.Elapsed, nil
}

func validateConcurrency(concurrency int) error {
	if concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidArgument, concurrency)
	}
	return nil
}
