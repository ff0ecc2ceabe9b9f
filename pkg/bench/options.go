package bench

import (
	"time"

	"github.com/zoobzio/clockz"

	"github.com/shivanshkc/delayfan/pkg/delay"
	"github.com/shivanshkc/delayfan/pkg/generator"
)

// ErrInvalidArgument is returned, wrapped, when a benchmark is asked to run with unusable parameters.
var ErrInvalidArgument = delay.ErrInvalidArgument

type config struct {
	clock    clockz.Clock
	seeded   bool
	seed     uint64
	limit    int
	interval time.Duration
	progress func(done, total int)
}

// Option configures a fan-out or an aggregation.
type Option func(*config)

func defaultConfig() config {
	return config{
		clock:    clockz.RealClock,
		interval: generator.DefaultInterval,
	}
}

func newConfig(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithClock sets the clock used for waiting and for measuring. The default is clockz.RealClock.
func WithClock(clock clockz.Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithSeed makes every sampled value reproducible. Operation or source i draws from stream i of
// the seed, so no two of them share sampling state.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seeded = true
		c.seed = seed
	}
}

// WithLimit sets the maximum number of operations in flight during a fan-out.
// A limit of zero (the default) starts every operation at once. Negative limits are ignored.
func WithLimit(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.limit = n
		}
	}
}

// WithStepInterval sets the wait before each value of a streaming source.
// The default is generator.DefaultInterval.
func WithStepInterval(interval time.Duration) Option {
	return func(c *config) {
		if interval > 0 {
			c.interval = interval
		}
	}
}

// WithProgress registers a hook invoked after each unit of work completes. It is called from the
// collecting goroutine, never concurrently with itself.
func WithProgress(fn func(done, total int)) Option {
	return func(c *config) {
		c.progress = fn
	}
}

// sourceFor returns the source of randomness for the i-th unit of work.
func (c config) sourceFor(i int) delay.Source {
	if !c.seeded {
		return delay.DefaultSource()
	}
	return delay.NewSource(c.seed, uint64(i))
}

func (c config) reportProgress(done, total int) {
	if c.progress != nil {
		c.progress(done, total)
	}
}
