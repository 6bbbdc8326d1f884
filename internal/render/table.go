package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/gi8lino/jiraterm/internal/jira"
)

// Table writes issues as a fixed-width table with the given columns.
func Table(w io.Writer, issues []jira.Issue, cols []Column, termWidth int, st Styles) {
	widths := ComputeWidths(cols, termWidth)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = pad(truncate(c.Label, widths[i]), widths[i])
	}
	fmt.Fprintln(w, st.Header(strings.TrimRight(strings.Join(header, gap()), " ")))

	total := columnGap * (len(cols) - 1)
	for _, width := range widths {
		total += width
	}
	fmt.Fprintln(w, st.Dim(strings.Repeat("-", total)))

	for _, issue := range issues {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cell := pad(truncate(c.Extract(issue), widths[i]), widths[i])
			if i == len(cols)-1 {
				cell = strings.TrimRight(cell, " ")
			}
			switch c.Name {
			case "key":
				cell = st.Key(cell)
			case "status":
				cell = st.Status(issue.Fields.Status.Name, cell)
			}
			cells[i] = cell
		}
		fmt.Fprintln(w, strings.Join(cells, gap()))
	}
}

// gap returns the separator between columns.
func gap() string { return strings.Repeat(" ", columnGap) }
