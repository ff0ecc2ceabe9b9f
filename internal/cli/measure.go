package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shivanshkc/delayfan/pkg/bench"
)

var (
	measureCount    int
	measureMaxDelay float64
)

// measureCmd times a complete fan-out and reports the average time per operation.
var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Measure the runtime of a concurrent batch.",
	Long:  "Runs random-delay operations concurrently and reports the total and per-operation runtime.",
	Run: func(cmd *cobra.Command, args []string) {
		if message := validateMeasureFlags(); message != "" {
			fmt.Println(message)
			os.Exit(1)
		}

		opts := append(commonOptions(cmd), bench.WithProgress(printProgress("operations")))
		sample, err := bench.Measure(cmd.Context(), measureCount, measureMaxDelay, opts...)
		if stopOnError(err) {
			return
		}

		renderRuntimeSample(os.Stdout, sample)
	},
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().IntVarP(&measureCount, "count", "n", 3,
		"Number of operations to run.")

	measureCmd.Flags().Float64VarP(&measureMaxDelay, "max-delay", "d", 10,
		"Upper bound of each random delay, in seconds.")
}
