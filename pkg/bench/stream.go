package bench

import (
	"context"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/shivanshkc/delayfan/pkg/generator"
	"github.com/shivanshkc/delayfan/pkg/streams"
)

// sourceRun is everything recorded while draining one streaming source.
type sourceRun struct {
	values     []float64
	start, end time.Time
	// stamps holds the clock reading of each value, in the order the values were pulled.
	stamps []time.Time
}

// drain pulls every sample from the stream and records when it started, when it ended and when
// each sample was produced.
func drain(ctx context.Context, clock clockz.Clock, stream *streams.Stream[generator.Sample]) (sourceRun, error) {
	run := sourceRun{start: clock.Now()}
	for {
		sample, ok, err := stream.NextContext(ctx)
		if err != nil {
			return sourceRun{}, err
		}
		if !ok {
			break
		}
		run.values = append(run.values, sample.Value())
		run.stamps = append(run.stamps, sample.Timestamp())
	}
	run.end = clock.Now()
	return run, nil
}

// runs are the sourceRuns of one aggregation, indexed by source.
type runs []sourceRun

// firstValue is the time to first value of every source that produced one.
func (r runs) firstValue() Durations {
	out := make(Durations, 0, len(r))
	for _, run := range r {
		if len(run.stamps) > 0 {
			out = append(out, run.stamps[0].Sub(run.start))
		}
	}
	return out
}

// betweenValues is the gap between consecutive values, pooled over all sources.
func (r runs) betweenValues() Durations {
	var out Durations
	for _, run := range r {
		for i := 1; i < len(run.stamps); i++ {
			out = append(out, run.stamps[i].Sub(run.stamps[i-1]))
		}
	}
	return out
}

// total is the drain time of every source.
func (r runs) total() Durations {
	out := make(Durations, len(r))
	for i, run := range r {
		out[i] = run.end.Sub(run.start)
	}
	return out
}
