// Package generator implements a finite, forward-only source of random delay values that produces
// one value per fixed step interval.
//
// A Source is an explicit cursor. It starts Ready, becomes Active on the first pull and is
// Exhausted once it has produced Steps values. Pulling an exhausted Source reports the end of the
// sequence; it is never an error and never restarts the sequence.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/shivanshkc/delayfan/pkg/delay"
	"github.com/shivanshkc/delayfan/pkg/streams"
)

const (
	// Steps is the number of values every Source produces.
	Steps = 10
	// Ceiling is the exclusive upper bound of every produced value.
	Ceiling = 10.0
	// DefaultInterval is the wait before each value.
	DefaultInterval = time.Second
)

// State is the position of a Source in its lifecycle.
type State int

const (
	// Ready means no value has been pulled yet.
	Ready State = iota
	// Active means at least one value has been pulled and more remain.
	Active
	// Exhausted means every value has been produced.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Active:
		return "active"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Sample is a single value produced by a Source.
type Sample struct {
	index     int
	value     float64
	timestamp time.Time
}

// Value is the produced delay value, in [0, Ceiling).
func (s Sample) Value() float64 { return s.value }

// Index is the 0-based step that produced the value.
func (s Sample) Index() int { return s.index }

// Timestamp is the time, on the Source's clock, at which the value was produced.
func (s Sample) Timestamp() time.Time { return s.timestamp }

// Source produces Steps random values, waiting one interval before each.
//
// A Source is meant for a single consumer and is not safe for concurrent use.
type Source struct {
	clock    clockz.Clock
	random   delay.Source
	interval time.Duration

	state State
	step  int
}

// Option configures a Source.
type Option func(*Source)

// WithClock sets the clock used to wait between values. The default is clockz.RealClock.
func WithClock(clock clockz.Clock) Option {
	return func(s *Source) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithSource sets the source of randomness. The default is delay.DefaultSource().
func WithSource(random delay.Source) Option {
	return func(s *Source) {
		if random != nil {
			s.random = random
		}
	}
}

// WithInterval sets the wait before each value. Non-positive intervals are ignored.
func WithInterval(interval time.Duration) Option {
	return func(s *Source) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// New returns a Source in the Ready state.
func New(opts ...Option) *Source {
	s := &Source{
		clock:    clockz.RealClock,
		random:   delay.DefaultSource(),
		interval: DefaultInterval,
		state:    Ready,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state of the Source.
func (s *Source) State() State {
	return s.state
}

// NextSample waits one interval and produces the next value.
//
// Once the Source is exhausted it returns ok=false immediately. If ctx is done during the wait, it
// returns the context's error and the cursor does not move.
func (s *Source) NextSample(ctx context.Context) (Sample, bool, error) {
	if s.state == Exhausted {
		return Sample{}, false, nil
	}

	if err := delay.Sleep(ctx, s.clock, s.interval); err != nil {
		return Sample{}, false, err
	}
	s.state = Active

	sample := Sample{
		index:     s.step,
		value:     delay.Uniform(s.random, Ceiling),
		timestamp: s.clock.Now(),
	}

	s.step++
	if s.step >= Steps {
		s.state = Exhausted
	}

	return sample, true, nil
}

// Next is like NextSample but only returns the value.
func (s *Source) Next(ctx context.Context) (float64, bool, error) {
	sample, ok, err := s.NextSample(ctx)
	return sample.value, ok, err
}

// Stream returns a lazy view of the remaining samples.
func (s *Source) Stream() *streams.Stream[Sample] {
	return streams.FromFunc(s.NextSample)
}

// Collect drains the Source and returns every remaining value in production order.
func (s *Source) Collect(ctx context.Context) ([]float64, error) {
	values := streams.Map(s.Stream(), Sample.Value)
	return values.Exhaust(ctx)
}
