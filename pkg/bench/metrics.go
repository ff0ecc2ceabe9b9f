package bench

import (
	"sort"
	"time"

	"github.com/shivanshkc/delayfan/pkg/delay"
)

// Metrics is a statistical summary of a set of durations.
type Metrics struct {
	Avg, Min, Med, Max, P90, P99 time.Duration
}

// Durations is a set of measured or sampled durations.
type Durations []time.Duration

// SecondsToDurations converts delays in seconds to Durations.
func SecondsToDurations(seconds []float64) Durations {
	out := make(Durations, len(seconds))
	for i, s := range seconds {
		out[i] = delay.Duration(s)
	}
	return out
}

// Metrics summarises the set. All fields are zero for an empty set.
func (ds Durations) Metrics() Metrics {
	return Metrics{
		Avg: ds.Average(),
		Min: ds.Minimum(),
		Med: ds.Median(),
		Max: ds.Maximum(),
		P90: ds.Percentile(90),
		P99: ds.Percentile(99),
	}
}

// Sum adds up every duration in the set.
func (ds Durations) Sum() time.Duration {
	var total time.Duration
	for _, d := range ds {
		total += d
	}
	return total
}

// Average calculates the mean of the set.
func (ds Durations) Average() time.Duration {
	if len(ds) == 0 {
		return 0
	}
	return ds.Sum() / time.Duration(len(ds))
}

// Minimum finds the smallest duration in the set.
func (ds Durations) Minimum() time.Duration {
	if len(ds) == 0 {
		return 0
	}

	m := ds[0]
	for _, d := range ds {
		if d < m {
			m = d
		}
	}
	return m
}

// Median finds the middle value of the sorted set.
func (ds Durations) Median() time.Duration {
	if len(ds) == 0 {
		return 0
	}

	sorted := ds.sorted()
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Maximum finds the largest duration in the set.
func (ds Durations) Maximum() time.Duration {
	if len(ds) == 0 {
		return 0
	}

	m := ds[0]
	for _, d := range ds {
		if d > m {
			m = d
		}
	}
	return m
}

// Percentile calculates the Pxx value of the set.
// Given percentile should be between 0 and 100.
func (ds Durations) Percentile(percentile float64) time.Duration {
	if len(ds) == 0 || percentile < 0 || percentile > 100 {
		return 0
	}

	sorted := ds.sorted()
	index := int(float64(len(sorted)-1) * (percentile / 100.0))
	return sorted[index]
}

// sorted returns an ascending copy, leaving the receiver untouched.
func (ds Durations) sorted() Durations {
	sorted := make(Durations, len(ds))
	copy(sorted, ds)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}
