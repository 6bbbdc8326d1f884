package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/gi8lino/jiraterm/internal/jira"
)

// Issue writes a single issue in the detail layout: header line, field
// block, and optionally the wrapped description.
func Issue(w io.Writer, issue jira.Issue, showDescription bool, width int, st Styles) {
	f := issue.Fields

	fmt.Fprintf(w, "%s  [%s]  (Status: %s)\n",
		st.Key(issue.Key), f.IssueType.Name, st.Status(f.Status.Name, f.Status.Name))
	fmt.Fprintf(w, "Summary    : %s\n", f.Summary)
	fmt.Fprintf(w, "Reporter   : %s\n", displayName(f.Reporter))
	fmt.Fprintf(w, "Assignee   : %s\n", displayName(f.Assignee))
	if len(f.Labels) > 0 {
		fmt.Fprintf(w, "Labels     : %s\n", strings.Join(f.Labels, ", "))
	}
	fmt.Fprintln(w, st.Dim(strings.Repeat("-", width)))

	if showDescription {
		fmt.Fprintln(w, "Description:")
		if desc := f.Description.String(); desc == "" {
			fmt.Fprintln(w, "  (no description)")
		} else {
			fmt.Fprintln(w, WrapIndent(desc, width, "  "))
		}
	}

	fmt.Fprintln(w)
}

// Comments writes the comment thread of an issue: author, timestamp and
// wrapped body, separated by dashed lines.
func Comments(w io.Writer, key string, comments []jira.Comment, width int, st Styles) {
	if len(comments) == 0 {
		fmt.Fprintf(w, "No comments on %s.\n", key)
		return
	}

	fmt.Fprintf(w, "Comments for %s:\n", st.Key(key))
	fmt.Fprintln(w, st.Dim(strings.Repeat("-", width)))
	for _, c := range comments {
		author := "(unknown)"
		if c.Author != nil {
			author = c.Author.DisplayName
		}
		fmt.Fprintf(w, "Author: %s\n", author)
		if c.Created != "" {
			fmt.Fprintf(w, "Date  : %s\n", FormatDateTime(c.Created))
		}
		fmt.Fprintln(w, "Body:")
		fmt.Fprintln(w, WrapIndent(c.Body.String(), width, "  "))
		fmt.Fprintln(w, st.Dim(strings.Repeat("-", width)))
	}
}
