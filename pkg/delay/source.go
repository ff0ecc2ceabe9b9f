package delay

import (
	"math/rand/v2"
	"sync"
)

// Source is a supply of uniformly distributed values in [0, 1).
//
// *rand.Rand from math/rand/v2 satisfies it, which makes any seeded generator usable.
type Source interface {
	Float64() float64
}

// globalSource reads from the process-wide generator of math/rand/v2. It is safe for concurrent use.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource returns the unseeded, goroutine-safe source used when none is configured.
func DefaultSource() Source {
	return globalSource{}
}

// lockedSource serialises access to a generator that is not safe for concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

// NewSource returns a deterministic source. Sources with the same seed and stream produce the same
// sequence, sources with different streams are independent.
func NewSource(seed, stream uint64) Source {
	return &lockedSource{rng: rand.New(rand.NewPCG(seed, stream))}
}

// Uniform samples a value in [0, upper] from the given source.
func Uniform(src Source, upper float64) float64 {
	return src.Float64() * upper
}
