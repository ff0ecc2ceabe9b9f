package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shivanshkc/delayfan/pkg/bench"
	"github.com/shivanshkc/delayfan/pkg/generator"
)

var (
	aggregateConcurrency int
	aggregateInterval    time.Duration
)

// aggregateCmd drains several streaming sources in parallel and reports how
// long it took, along with per-source timing statistics.
var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Drain several streaming sources in parallel.",
	Long:  "Drains several streaming sources concurrently, collects all their values and reports the runtime.",
	Run: func(cmd *cobra.Command, args []string) {
		if message := validateAggregateFlags(); message != "" {
			fmt.Println(message)
			os.Exit(1)
		}

		opts := append(commonOptions(cmd),
			bench.WithStepInterval(aggregateInterval),
			bench.WithProgress(printProgress("sources")))

		result, err := bench.Aggregate(cmd.Context(), aggregateConcurrency, opts...)
		if stopOnError(err) {
			return
		}

		renderAggregateResult(os.Stdout, result)
	},
}

func init() {
	rootCmd.AddCommand(aggregateCmd)

	aggregateCmd.Flags().IntVarP(&aggregateConcurrency, "concurrency", "c", 4,
		"Number of sources to drain concurrently.")

	aggregateCmd.Flags().DurationVarP(&aggregateInterval, "interval", "i", generator.DefaultInterval,
		"Wait before each value of every source.")
}
