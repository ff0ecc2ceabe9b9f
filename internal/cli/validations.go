package cli

import (
	"github.com/shivanshkc/delayfan/pkg/delay"
)

// validateRootFlags validates the flags of the root command.
func validateRootFlags() string {
	if rootLimit < 0 {
		return "Limit must not be negative."
	}
	return ""
}

// validateMaxDelay validates a max delay flag value.
func validateMaxDelay(maxDelay float64) string {
	if err := delay.Validate(maxDelay); err != nil {
		return "Invalid max delay: " + err.Error()
	}
	return ""
}

// validateWaitFlags validates the flags of the wait command.
func validateWaitFlags() string {
	// Root command flags are used by the wait command too.
	if message := validateRootFlags(); message != "" {
		return message
	}

	// Zero operations is a valid, empty run.
	if waitCount < 0 {
		return "Count must not be negative."
	}

	return validateMaxDelay(waitMaxDelay)
}

// validateMeasureFlags validates the flags of the measure command.
func validateMeasureFlags() string {
	if message := validateRootFlags(); message != "" {
		return message
	}

	// An average over zero operations is undefined.
	if measureCount <= 0 {
		return "Count must be greater than 0."
	}

	return validateMaxDelay(measureMaxDelay)
}

// validateStreamFlags validates the flags of the stream command.
func validateStreamFlags() string {
	if streamInterval <= 0 {
		return "Interval must be greater than 0."
	}
	return ""
}

// validateAggregateFlags validates the flags of the aggregate command.
func validateAggregateFlags() string {
	if message := validateRootFlags(); message != "" {
		return message
	}

	// At least 1 source should be drained.
	if aggregateConcurrency <= 0 {
		return "Concurrency must be greater than 0."
	}

	if aggregateInterval <= 0 {
		return "Interval must be greater than 0."
	}

	return ""
}
