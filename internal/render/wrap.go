package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Wrap wraps text at width, preserving paragraph breaks and never splitting
// inside a word unless the word itself exceeds the width.
func Wrap(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	return wrap.String(wordwrap.String(s, width), width)
}

// WrapIndent wraps text at width and prefixes every line with indent.
func WrapIndent(s string, width int, indent string) string {
	wrapped := Wrap(s, width-runewidth.StringWidth(indent))
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

// truncate hard-cuts text to width, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// pad right-pads text with spaces up to width.
func pad(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
