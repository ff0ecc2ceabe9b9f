package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shivanshkc/delayfan/pkg/delay"
)

// RuntimeSample is the timing of one complete fan-out.
type RuntimeSample struct {
	// ID identifies the run.
	ID string
	// N is the number of operations in the batch.
	N int
	// Total is the clock time from launching the batch to collecting its last result.
	Total time.Duration
	// AveragePerUnit is Total / N.
	AveragePerUnit time.Duration
	// Delays are the sampled delays in completion order.
	Delays []float64
	// Metrics summarises Delays.
	Metrics Metrics
}

// Measure runs FanOut(n, maxDelay) and times it.
//
// n must be at least 1, since the per-unit average is undefined otherwise. Both arguments are
// validated before anything is launched.
func Measure(ctx context.Context, n int, maxDelay float64, opts ...Option) (RuntimeSample, error) {
	if n < 1 {
		return RuntimeSample{}, fmt.Errorf("%w: at least one operation is required to compute an average, got %d",
			ErrInvalidArgument, n)
	}
	if err := delay.Validate(maxDelay); err != nil {
		return RuntimeSample{}, err
	}

	cfg := newConfig(opts)

	start := cfg.clock.Now()
	delays, err := FanOut(ctx, n, maxDelay, opts...)
	total := cfg.clock.Now().Sub(start)

	if err != nil {
		return RuntimeSample{}, err
	}

	return RuntimeSample{
		ID:             uuid.NewString(),
		N:              n,
		Total:          total,
		AveragePerUnit: total / time.Duration(n),
		Delays:         delays,
		Metrics:        SecondsToDurations(delays).Metrics(),
	}, nil
}

// MeasureAverage returns the total time of FanOut(n, maxDelay) divided by n.
func MeasureAverage(ctx context.Context, n int, maxDelay float64, opts ...Option) (time.Duration, error) {
	sample, err := Measure(ctx, n, maxDelay, opts...)
	if err != nil {
		return 0, err
	}
	return sample.AveragePerUnit, nil
}
