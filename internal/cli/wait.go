package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shivanshkc/delayfan/pkg/bench"
)

var (
	waitCount    int
	waitMaxDelay float64
)

// waitCmd runs a batch of random-delay operations concurrently and lists the
// sampled delays in the order the operations completed.
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Run random-delay operations concurrently.",
	Long:  "Runs random-delay operations concurrently and lists their delays in completion order.",
	Run: func(cmd *cobra.Command, args []string) {
		if message := validateWaitFlags(); message != "" {
			fmt.Println(message)
			os.Exit(1)
		}

		opts := append(commonOptions(cmd), bench.WithProgress(printProgress("operations")))
		delays, err := bench.FanOut(cmd.Context(), waitCount, waitMaxDelay, opts...)
		if stopOnError(err) {
			return
		}

		renderDelays(os.Stdout, "Completion order", delays)
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)

	waitCmd.Flags().IntVarP(&waitCount, "count", "n", 3,
		"Number of operations to run.")

	waitCmd.Flags().Float64VarP(&waitMaxDelay, "max-delay", "d", 10,
		"Upper bound of each random delay, in seconds.")
}
