package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/ctrf/pkg/ctrf"
)

// Plain renders a report as unstyled text for logs and pipes.
// No ANSI codes; one line per failed test.
type Plain struct{}

// NewPlain creates a plain renderer.
func NewPlain() *Plain {
	return &Plain{}
}

// Render formats r as:
//
//	CTRF: FAIL nightwatch.js | 2 tests: 1 passed, 1 failed
//	FAIL case2 (45ms)
func (p *Plain) Render(r *ctrf.Report) string {
	s := r.Results.Summary

	var counts []string
	for _, st := range ctrf.Statuses() {
		if n := s.Count(st); n > 0 {
			counts = append(counts, fmt.Sprintf("%d %s", n, st))
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "CTRF: %s %s | %d tests", Verdict(s), r.Results.Tool.Name, s.Tests)
	if len(counts) > 0 {
		sb.WriteString(": ")
		sb.WriteString(strings.Join(counts, ", "))
	}
	sb.WriteString("\n")

	for _, ft := range ctrf.FailedTests(r) {
		fmt.Fprintf(&sb, "FAIL %s (%s)\n", ft.Name, formatMs(ft.Duration))
	}
	return sb.String()
}
