package bench_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivanshkc/delayfan/pkg/bench"
	"github.com/shivanshkc/delayfan/pkg/delay"
	"github.com/shivanshkc/delayfan/pkg/generator"
	"github.com/shivanshkc/delayfan/pkg/streams"
)

// stepInterval stands in for the one-second reference step, keeping tests short.
const stepInterval = 10 * time.Millisecond

// TestAggregate verifies the parallel stream aggregator.
func TestAggregate(t *testing.T) {
	t.Run("Four Sources Produce Forty Values", func(t *testing.T) {
		values, err := bench.AggregateStreams(context.Background(), 4, bench.WithStepInterval(stepInterval))
		require.NoError(t, err)
		require.Len(t, values, 4*generator.Steps)
		for _, v := range values {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, generator.Ceiling)
		}
	})

	t.Run("Sources Run Concurrently", func(t *testing.T) {
		start := time.Now()
		_, err := generator.New(generator.WithInterval(stepInterval)).Collect(context.Background())
		require.NoError(t, err)
		single := time.Since(start)

		elapsed, err := bench.MeasureAggregateRuntime(context.Background(), 4, bench.WithStepInterval(stepInterval))
		require.NoError(t, err)

		assert.GreaterOrEqual(t, elapsed, generator.Steps*stepInterval, "Each source takes ten full steps")
		assert.Less(t, elapsed, 2*single, "Four concurrent sources should take about as long as one")
	})

	t.Run("Per-Source Order Preserved And Concatenated By Source", func(t *testing.T) {
		const seed, concurrency = 21, 3

		result, err := bench.Aggregate(context.Background(), concurrency,
			bench.WithSeed(seed), bench.WithStepInterval(time.Millisecond))
		require.NoError(t, err)
		require.Len(t, result.PerSource, concurrency)

		var expectedFlat []float64
		for i := range concurrency {
			expected, err := generator.New(
				generator.WithInterval(time.Millisecond),
				generator.WithSource(delay.NewSource(seed, uint64(i))),
			).Collect(context.Background())
			require.NoError(t, err)

			assert.Equal(t, expected, result.PerSource[i], "Source %d must keep its own order", i)
			expectedFlat = append(expectedFlat, expected...)
		}
		assert.Equal(t, expectedFlat, result.Values)
	})

	t.Run("Timing Metrics", func(t *testing.T) {
		result, err := bench.Aggregate(context.Background(), 2, bench.WithStepInterval(stepInterval))
		require.NoError(t, err)

		assert.NotEmpty(t, result.ID)
		assert.GreaterOrEqual(t, result.TTFV.Min, stepInterval)
		assert.GreaterOrEqual(t, result.TBV.Min, stepInterval)
		assert.GreaterOrEqual(t, result.TT.Min, generator.Steps*stepInterval)
		assert.LessOrEqual(t, result.TT.Max, result.Elapsed)
	})

	t.Run("Progress Hook", func(t *testing.T) {
		var calls []int
		_, err := bench.Aggregate(context.Background(), 3,
			bench.WithStepInterval(time.Millisecond),
			bench.WithProgress(func(done, total int) {
				assert.Equal(t, 3, total)
				calls = append(calls, done)
			}))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, calls)
	})

	t.Run("Invalid Concurrency", func(t *testing.T) {
		for _, concurrency := range []int{0, -2} {
			_, err := bench.Aggregate(context.Background(), concurrency)
			assert.ErrorIs(t, err, bench.ErrInvalidArgument)

			values, err := bench.AggregateStreams(context.Background(), concurrency)
			assert.ErrorIs(t, err, bench.ErrInvalidArgument)
			assert.Nil(t, values)

			elapsed, err := bench.MeasureAggregateRuntime(context.Background(), concurrency)
			assert.ErrorIs(t, err, bench.ErrInvalidArgument)
			assert.Zero(t, elapsed)
		}
	})

	t.Run("Limit Serialises Sources", func(t *testing.T) {
		const interval = 2 * time.Millisecond

		elapsed, err := bench.MeasureAggregateRuntime(context.Background(), 4,
			bench.WithLimit(1), bench.WithStepInterval(interval))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 4*generator.Steps*interval, "One source at a time means four full runs")
	})

	t.Run("Limit Bounds Sources In Flight", func(t *testing.T) {
		var running, peak atomic.Int32
		open := func(int) *streams.Stream[generator.Sample] {
			now := running.Add(1)
			for {
				old := peak.Load()
				if now <= old || peak.CompareAndSwap(old, now) {
					break
				}
			}

			source := generator.New(generator.WithInterval(time.Millisecond))
			return streams.FromFunc(func(ctx context.Context) (generator.Sample, bool, error) {
				sample, ok, err := source.NextSample(ctx)
				if !ok || err != nil {
					running.Add(-1)
				}
				return sample, ok, err
			})
		}

		result, err := bench.AggregateFrom(context.Background(), 6, open, bench.WithLimit(2))
		require.NoError(t, err)
		assert.Len(t, result.Values, 6*generator.Steps)
		assert.LessOrEqual(t, peak.Load(), int32(2))
		assert.Zero(t, running.Load())
	})

	t.Run("Failing Source Cancels Siblings", func(t *testing.T) {
		errBroken := errors.New("source broke after two values")
		var running atomic.Int32

		open := func(i int) *streams.Stream[generator.Sample] {
			if i == 1 {
				source := generator.New(generator.WithInterval(time.Millisecond))
				pulls := 0
				return streams.FromFunc(func(ctx context.Context) (generator.Sample, bool, error) {
					pulls++
					if pulls > 2 {
						return generator.Sample{}, false, errBroken
					}
					return source.NextSample(ctx)
				})
			}

			// Siblings would take ten seconds to finish on their own.
			running.Add(1)
			source := generator.New(generator.WithInterval(time.Second))
			return streams.FromFunc(func(ctx context.Context) (generator.Sample, bool, error) {
				sample, ok, err := source.NextSample(ctx)
				if !ok || err != nil {
					running.Add(-1)
				}
				return sample, ok, err
			})
		}

		start := time.Now()
		result, err := bench.AggregateFrom(context.Background(), 4, open)
		duration := time.Since(start)

		require.Error(t, err)
		assert.ErrorIs(t, err, errBroken)
		assert.Equal(t, bench.AggregateResult{}, result)
		assert.Less(t, duration, 500*time.Millisecond, "A failing source should cancel its siblings")
		assert.Zero(t, running.Load(), "Every sibling must have returned before Aggregate does")
	})

	t.Run("Nil Source Opener", func(t *testing.T) {
		_, err := bench.AggregateFrom(context.Background(), 2, nil)
		assert.ErrorIs(t, err, bench.ErrInvalidArgument)

		_, err = bench.AggregateFrom(context.Background(), 0, func(int) *streams.Stream[generator.Sample] { return nil })
		assert.ErrorIs(t, err, bench.ErrInvalidArgument)
	})

	t.Run("Context Cancellation", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		start := time.Now()
		result, err := bench.Aggregate(ctx, 4)
		duration := time.Since(start)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, bench.AggregateResult{}, result)
		assert.Less(t, duration, 500*time.Millisecond, "Aggregate should respect context cancellation")
	})
}
