// Package cli contains all the command-line interface logic for the application,
// powered by the cobra library. It defines the root command, subcommands,
// and their respective flags.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/shivanshkc/delayfan/pkg/bench"
	"github.com/shivanshkc/delayfan/pkg/delay"
)

var (
	// rootSeed and rootLimit hold the values from the root command's persistent flags.
	// Defining them at the package level allows all subcommands within this
	// package to access these shared values directly.
	rootSeed  uint64
	rootLimit int
)

// rootCmd represents the base command when called without any subcommands.
// It serves as the entry point and parent for all other commands.
var rootCmd = &cobra.Command{
	Use:   "delayfan",
	Short: "A tool to fan out random-delay operations and measure them.",
	Long: `A tool to fan out random-delay operations and measure them.
This CLI provides subcommands to run operations concurrently, collect them in completion order,
stream delays incrementally and measure how long all of it takes.`,
}

// Execute is the primary entry point for the CLI application, called by main.go.
//
// It sets up a single, root cancellable context and wires it up to respond
// to OS interruption signals (like Ctrl+C or SIGTERM). This context is then passed down
// to all cobra commands, so that in-flight operations are abandoned on interruption.
func Execute() error {
	// Create a root context that can be canceled.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up a channel to listen for specific OS signals.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	// Launch a goroutine to cancel the context upon receiving a signal.
	go func() {
		<-signals
		cancel()
	}()

	// Execute the root command with the cancellable context.
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().Uint64VarP(&rootSeed, "seed", "s", 0,
		"Seed for reproducible delays. Unseeded runs are random.")

	rootCmd.PersistentFlags().IntVarP(&rootLimit, "limit", "l", 0,
		"Maximum number of operations in flight. 0 means no limit.")
}

// commonOptions converts the root command's flags to benchmark options.
func commonOptions(cmd *cobra.Command) []bench.Option {
	opts := []bench.Option{bench.WithLimit(rootLimit)}
	if cmd.Flags().Changed("seed") {
		opts = append(opts, bench.WithSeed(rootSeed))
	}
	return opts
}

// streamSource returns the source of randomness for a standalone stream.
func streamSource(cmd *cobra.Command) delay.Source {
	if cmd.Flags().Changed("seed") {
		return delay.NewSource(rootSeed, 0)
	}
	return delay.DefaultSource()
}

// printProgress logs the completion of one unit of work.
func printProgress(unit string) func(done, total int) {
	return func(done, total int) {
		fmt.Println(text.FgHiBlack.Sprintf("[%d/%d] %s complete.", done, total, unit))
	}
}

// stopOnError reports err and tells the caller whether to stop.
// Failures exit the process with status 1. Interruptions stop silently.
func stopOnError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return true
	}

	fmt.Println(text.FgRed.Sprint("Run failed:"), err)
	os.Exit(1)
	return true
}
