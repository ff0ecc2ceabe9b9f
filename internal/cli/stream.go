package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/shivanshkc/delayfan/pkg/generator"
	"github.com/shivanshkc/delayfan/pkg/utils/miscutils"
)

var streamInterval time.Duration

// streamCmd pulls a single streaming source and prints every value the moment
// it is produced. It stops early and quietly on Ctrl+C.
var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Print delay values as a streaming source produces them.",
	Long:  fmt.Sprintf("Pulls %d random values from a streaming source, one per interval, printing each as it arrives.", generator.Steps),
	Run: func(cmd *cobra.Command, args []string) {
		if message := validateStreamFlags(); message != "" {
			fmt.Println(message)
			os.Exit(1)
		}

		source := generator.New(
			generator.WithSource(streamSource(cmd)),
			generator.WithInterval(streamInterval),
		)

		// Consume the source value-by-value.
		for {
			sample, ok, err := source.NextSample(cmd.Context())
			if stopOnError(err) || !ok {
				break
			}

			fmt.Print(text.FgBlue.Sprintf("[%d/%d] ", sample.Index()+1, generator.Steps))
			fmt.Println(text.FgGreen.Sprint(miscutils.FormatSeconds(sample.Value())))
		}
	},
}

func init() {
	rootCmd.AddCommand(streamCmd)

	streamCmd.Flags().DurationVarP(&streamInterval, "interval", "i", generator.DefaultInterval,
		"Wait before each value.")
}
