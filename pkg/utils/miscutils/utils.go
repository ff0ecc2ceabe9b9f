// Package miscutils holds small formatting helpers shared by the CLI.
package miscutils

import (
	"fmt"
	"math"
	"time"
)

// FormatDuration renders d with a unit suited to its magnitude and two decimals.
func FormatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}

	// Format based on magnitude.
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%.0fns", float64(d.Nanoseconds()))
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fμs", float64(d.Nanoseconds())/1000)
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1000000)
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

// FormatSeconds renders a delay given in seconds the same way as FormatDuration.
func FormatSeconds(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Sprint(seconds)
	}
	return FormatDuration(time.Duration(math.Round(seconds * float64(time.Second))))
}
