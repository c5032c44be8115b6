// Package render formats a CTRF report for people reading a terminal or a log.
package render

import (
	"fmt"

	"github.com/dkoosis/ctrf/pkg/ctrf"
)

// Renderer converts a report to formatted output.
type Renderer interface {
	Render(r *ctrf.Report) string
}

// Verdict returns "FAIL" when any test failed, "PASS" when at least one test
// passed and none failed, and "NONE" otherwise.
func Verdict(s ctrf.Summary) string {
	switch {
	case s.Failed > 0:
		return "FAIL"
	case s.Passed > 0:
		return "PASS"
	default:
		return "NONE"
	}
}

// totalDuration sums the measured test durations in milliseconds.
func totalDuration(tests []ctrf.Test) int64 {
	var total int64
	for _, t := range tests {
		total += t.Duration
	}
	return total
}

// formatMs renders milliseconds compactly: 45ms, 1.2s, 2m05s.
func formatMs(ms int64) string {
	switch {
	case ms < 1000:
		return fmt.Sprintf("%dms", ms)
	case ms < 60_000:
		return fmt.Sprintf("%.1fs", float64(ms)/1000)
	default:
		return fmt.Sprintf("%dm%02ds", ms/60_000, (ms%60_000)/1000)
	}
}
