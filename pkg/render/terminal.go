package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/ctrf/pkg/ctrf"
)

// maxNameWidth caps test-name columns, in terminal cells.
const maxNameWidth = 60

// Terminal renders a report as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
	title cases.Caser
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width, title: cases.Title(language.English)}
}

// Render formats the summary and failed tests of r.
func (t *Terminal) Render(r *ctrf.Report) string {
	s := r.Results.Summary
	var sb strings.Builder

	verdict := Verdict(s)
	verdictStyle := t.theme.Muted
	switch verdict {
	case "FAIL":
		verdictStyle = t.theme.Style(ctrf.StatusFailed)
	case "PASS":
		verdictStyle = t.theme.Style(ctrf.StatusPassed)
	}
	sb.WriteString(t.theme.Header.Render(r.Results.Tool.Name))
	sb.WriteString("  ")
	sb.WriteString(verdictStyle.Render(verdict))
	sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("  %d tests in %s", s.Tests, formatMs(totalDuration(r.Results.Tests)))))
	sb.WriteString("\n")

	for _, st := range ctrf.Statuses() {
		n := s.Count(st)
		if n == 0 {
			continue
		}
		label := t.title.String(string(st))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Style(st).Render(fmt.Sprintf("%s %s: %d", t.theme.Icon(st), label, n)))
		sb.WriteString("\n")
	}

	failed := ctrf.FailedTests(r)
	if len(failed) == 0 {
		return sb.String()
	}

	sb.WriteString(t.theme.Header.Render(fmt.Sprintf("Failed tests (%d)", len(failed))))
	sb.WriteString("\n")

	nameWidth := 0
	for _, ft := range failed {
		if w := runewidth.StringWidth(ft.Name); w > nameWidth {
			nameWidth = w
		}
	}
	// icon, spaces and a duration column
	if limit := t.width - 16; nameWidth > limit {
		nameWidth = limit
	}
	if nameWidth > maxNameWidth {
		nameWidth = maxNameWidth
	}
	if nameWidth < 8 {
		nameWidth = 8
	}

	failStyle := t.theme.Style(ctrf.StatusFailed)
	for _, ft := range failed {
		name := runewidth.Truncate(ft.Name, nameWidth, "...")
		name = runewidth.FillRight(name, nameWidth)
		sb.WriteString("  ")
		sb.WriteString(failStyle.Render(t.theme.Icon(ctrf.StatusFailed) + " " + name))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Muted.Render(formatMs(ft.Duration)))
		sb.WriteString("\n")
	}
	return sb.String()
}
