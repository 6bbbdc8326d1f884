package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the terminal styling applied during rendering. In ASCII mode
// every method returns its input unchanged.
type Styles struct {
	ascii          bool
	header         lipgloss.Style
	dim            lipgloss.Style
	key            lipgloss.Style
	statusDone     lipgloss.Style
	statusProgress lipgloss.Style
	statusBlocked  lipgloss.Style
}

// NewStyles returns the default styling, or a pass-through set when ascii is true.
func NewStyles(ascii bool) Styles {
	if ascii {
		return Styles{ascii: true}
	}
	return Styles{
		header:         lipgloss.NewStyle().Bold(true),
		dim:            lipgloss.NewStyle().Faint(true),
		key:            lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		statusDone:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		statusProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		statusBlocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Header styles a table header cell.
func (s Styles) Header(text string) string {
	if s.ascii {
		return text
	}
	return s.header.Render(text)
}

// Dim styles separator lines.
func (s Styles) Dim(text string) string {
	if s.ascii {
		return text
	}
	return s.dim.Render(text)
}

// Key styles an issue key.
func (s Styles) Key(text string) string {
	if s.ascii {
		return text
	}
	return s.key.Render(text)
}

// Status colors text by status category. The category is derived from the
// status name, not the already padded cell text.
func (s Styles) Status(name, text string) string {
	if s.ascii {
		return text
	}
	switch n := strings.ToLower(name); {
	case strings.Contains(n, "done"), strings.Contains(n, "closed"), strings.Contains(n, "resolved"):
		return s.statusDone.Render(text)
	case strings.Contains(n, "progress"), strings.Contains(n, "review"):
		return s.statusProgress.Render(text)
	case strings.Contains(n, "blocked"):
		return s.statusBlocked.Render(text)
	default:
		return text
	}
}
