package miscutils_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shivanshkc/delayfan/pkg/utils/miscutils"
)

func TestFormatDuration(t *testing.T) {
	testCases := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{name: "Zero", input: 0, expected: "0s"},
		{name: "Nanoseconds", input: 750 * time.Nanosecond, expected: "750ns"},
		{name: "Microseconds", input: 1500 * time.Nanosecond, expected: "1.50μs"},
		{name: "Milliseconds", input: 12340 * time.Microsecond, expected: "12.34ms"},
		{name: "Seconds", input: 2500 * time.Millisecond, expected: "2.50s"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, miscutils.FormatDuration(tc.input))
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0s", miscutils.FormatSeconds(0))
	assert.Equal(t, "250.00ms", miscutils.FormatSeconds(0.25))
	assert.Equal(t, "7.50s", miscutils.FormatSeconds(7.5))
	assert.Equal(t, "NaN", miscutils.FormatSeconds(math.NaN()))
}
