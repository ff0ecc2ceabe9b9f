package delay

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/zoobzio/clockz"
)

// ErrInvalidArgument is returned, wrapped, by every operation that rejects its input.
var ErrInvalidArgument = errors.New("invalid argument")

// MaxDelay is the largest delay bound, in seconds, that can be expressed as a time.Duration.
const MaxDelay = float64(1<<62) / float64(time.Second)

// Validate checks that maxDelay is usable as an upper bound for a random delay.
func Validate(maxDelay float64) error {
	switch {
	case math.IsNaN(maxDelay), math.IsInf(maxDelay, 0):
		return fmt.Errorf("%w: max delay must be a finite number, got %v", ErrInvalidArgument, maxDelay)
	case maxDelay < 0:
		return fmt.Errorf("%w: max delay must not be negative, got %v", ErrInvalidArgument, maxDelay)
	case maxDelay > MaxDelay:
		return fmt.Errorf("%w: max delay must not exceed %v seconds, got %v", ErrInvalidArgument, MaxDelay, maxDelay)
	}
	return nil
}

// Duration converts a delay in seconds to a time.Duration.
//
// It rounds up, so sleeping for the result never takes less than the given number of seconds.
func Duration(seconds float64) time.Duration {
	return time.Duration(math.Ceil(seconds * float64(time.Second)))
}

// Sleep suspends the caller for d as measured by the given clock, or until the context is done.
//
// A non-positive d does not suspend at all. The only error returned is the context's error.
func Sleep(ctx context.Context, clock clockz.Clock, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C():
		return nil
	}
}
