package cli

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/shivanshkc/delayfan/pkg/bench"
	"github.com/shivanshkc/delayfan/pkg/utils/miscutils"
)

// metricsHeader is the header row of every metrics table.
var metricsHeader = table.Row{"Metric", "Avg", "Min", "Median", "Max", "P90", "P99"}

// newTable returns a table writer that renders to w in the CLI's style.
func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle("%s", title)
	}
	return t
}

// metricsRow formats a metrics summary as a table row.
func metricsRow(name string, m bench.Metrics) table.Row {
	return table.Row{
		name,
		miscutils.FormatDuration(m.Avg),
		miscutils.FormatDuration(m.Min),
		miscutils.FormatDuration(m.Med),
		miscutils.FormatDuration(m.Max),
		miscutils.FormatDuration(m.P90),
		miscutils.FormatDuration(m.P99),
	}
}

// renderDelays prints delays in the order given, which for a fan-out is completion order.
func renderDelays(w io.Writer, title string, delays []float64) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"#", "Delay"})
	for i, d := range delays {
		t.AppendRow(table.Row{i + 1, miscutils.FormatSeconds(d)})
	}
	t.Render()
}

// renderRuntimeSample prints the result of a measured fan-out.
func renderRuntimeSample(w io.Writer, sample bench.RuntimeSample) {
	summary := newTable(w, "Run "+sample.ID)
	summary.AppendHeader(table.Row{"Operations", "Total", "Average per unit"})
	summary.AppendRow(table.Row{
		sample.N,
		miscutils.FormatDuration(sample.Total),
		miscutils.FormatDuration(sample.AveragePerUnit),
	})
	summary.Render()

	metrics := newTable(w, "Sampled delays")
	metrics.AppendHeader(metricsHeader)
	metrics.AppendRow(metricsRow("Delay", sample.Metrics))
	metrics.Render()
}

// renderAggregateResult prints the result of a parallel stream aggregation.
func renderAggregateResult(w io.Writer, result bench.AggregateResult) {
	summary := newTable(w, "Run "+result.ID)
	summary.AppendHeader(table.Row{"Sources", "Values", "Elapsed"})
	summary.AppendRow(table.Row{
		len(result.PerSource),
		len(result.Values),
		miscutils.FormatDuration(result.Elapsed),
	})
	summary.Render()

	metrics := newTable(w, "Source timings")
	metrics.AppendHeader(metricsHeader)
	metrics.AppendRow(metricsRow("Time to first value", result.TTFV))
	metrics.AppendRow(metricsRow("Time between values", result.TBV))
	metrics.AppendRow(metricsRow("Total time", result.TT))
	metrics.Render()
}
