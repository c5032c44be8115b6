package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/ctrf/pkg/ctrf"
)

// Theme defines colors and icons for terminal rendering.
type Theme struct {
	Name   string
	Header lipgloss.Style
	Muted  lipgloss.Style
	styles map[ctrf.Status]lipgloss.Style
	icons  map[ctrf.Status]string
}

// Style returns the style for a test status.
func (t Theme) Style(s ctrf.Status) lipgloss.Style {
	if st, ok := t.styles[s]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// Icon returns the icon for a test status.
func (t Theme) Icon(s ctrf.Status) string {
	if icon, ok := t.icons[s]; ok {
		return icon
	}
	return "?"
}

func colored(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:   "default",
		Header: lipgloss.NewStyle().Bold(true),
		Muted:  colored("242"), // gray
		styles: map[ctrf.Status]lipgloss.Style{
			ctrf.StatusPassed:  colored("34"),  // green
			ctrf.StatusFailed:  colored("196"), // red
			ctrf.StatusPending: colored("39"),  // blue
			ctrf.StatusSkipped: colored("214"), // orange
			ctrf.StatusOther:   colored("242"),
		},
		icons: map[ctrf.Status]string{
			ctrf.StatusPassed:  "✓",
			ctrf.StatusFailed:  "✗",
			ctrf.StatusPending: "○",
			ctrf.StatusSkipped: "⊘",
			ctrf.StatusOther:   "·",
		},
	}
}

// OrcaTheme returns a muted, professional theme.
func OrcaTheme() Theme {
	t := DefaultTheme()
	t.Name = "orca"
	t.Muted = colored("245")
	t.styles = map[ctrf.Status]lipgloss.Style{
		ctrf.StatusPassed:  colored("108"), // sage green
		ctrf.StatusFailed:  colored("167"), // muted red
		ctrf.StatusPending: colored("75"),  // pale blue
		ctrf.StatusSkipped: colored("179"), // muted gold
		ctrf.StatusOther:   colored("245"),
	}
	return t
}

// MonoTheme returns a monochrome theme with ASCII icons.
func MonoTheme() Theme {
	return Theme{
		Name:   "mono",
		Header: lipgloss.NewStyle().Bold(true),
		Muted:  lipgloss.NewStyle(),
		styles: map[ctrf.Status]lipgloss.Style{},
		icons: map[ctrf.Status]string{
			ctrf.StatusPassed:  "+",
			ctrf.StatusFailed:  "x",
			ctrf.StatusPending: "-",
			ctrf.StatusSkipped: "~",
			ctrf.StatusOther:   "*",
		},
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}
