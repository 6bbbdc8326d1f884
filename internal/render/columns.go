package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gi8lino/jiraterm/internal/jira"
)

// Column maps a logical column name to its label, width bounds and value
// extractor. Flexible marks the column that absorbs leftover width.
type Column struct {
	Name     string
	Label    string
	MinWidth int
	MaxWidth int
	Flexible bool
	Extract  func(jira.Issue) string
}

// registry is the process-wide, immutable column set.
var registry = []Column{
	{Name: "key", Label: "Key", MinWidth: 8, MaxWidth: 14, Extract: func(i jira.Issue) string { return i.Key }},
	{Name: "type", Label: "Type", MinWidth: 6, MaxWidth: 10, Extract: func(i jira.Issue) string { return i.Fields.IssueType.Name }},
	{Name: "status", Label: "Status", MinWidth: 6, MaxWidth: 14, Extract: func(i jira.Issue) string { return i.Fields.Status.Name }},
	{Name: "summary", Label: "Summary", MinWidth: 20, MaxWidth: 60, Flexible: true, Extract: func(i jira.Issue) string { return i.Fields.Summary }},
	{Name: "assignee", Label: "Assignee", MinWidth: 10, MaxWidth: 20, Extract: func(i jira.Issue) string { return displayName(i.Fields.Assignee) }},
	{Name: "reporter", Label: "Reporter", MinWidth: 10, MaxWidth: 20, Extract: func(i jira.Issue) string { return displayName(i.Fields.Reporter) }},
	{Name: "priority", Label: "Priority", MinWidth: 6, MaxWidth: 10, Extract: func(i jira.Issue) string { return namedOrEmpty(i.Fields.Priority) }},
	{Name: "created", Label: "Created", MinWidth: 10, MaxWidth: 10, Extract: func(i jira.Issue) string { return FormatDate(i.Fields.Created) }},
	{Name: "updated", Label: "Updated", MinWidth: 10, MaxWidth: 10, Extract: func(i jira.Issue) string { return FormatDate(i.Fields.Updated) }},
	{Name: "labels", Label: "Labels", MinWidth: 8, MaxWidth: 24, Extract: func(i jira.Issue) string { return strings.Join(i.Fields.Labels, ",") }},
}

// DefaultColumns returns the default listing columns: key, summary, status.
func DefaultColumns() []Column {
	cols, _ := Columns([]string{"key", "summary", "status"})
	return cols
}

// Lookup returns the column with the given name, matched case-insensitively.
func Lookup(name string) (Column, bool) {
	for _, c := range registry {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return Column{}, false
}

// Columns resolves an ordered list of column names against the registry.
func Columns(names []string) ([]Column, error) {
	out := make([]Column, 0, len(names))
	for _, name := range names {
		c, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown column %q (known: %s)", name, strings.Join(Names(), ", "))
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseColumns splits a comma-separated column spec. Empty input yields the defaults.
func ParseColumns(spec string) ([]Column, error) {
	if strings.TrimSpace(spec) == "" {
		return DefaultColumns(), nil
	}
	return Columns(strings.Split(spec, ","))
}

// Names lists all registered column names in declaration order.
func Names() []string {
	out := make([]string, len(registry))
	for i, c := range registry {
		out[i] = c.Name
	}
	return out
}

// jiraTimeLayout is the timestamp format Jira returns, e.g. 2024-03-01T10:14:00.000+0000.
const jiraTimeLayout = "2006-01-02T15:04:05.000-0700"

// FormatDate shortens a Jira timestamp to its date part.
func FormatDate(ts string) string {
	if t, err := time.Parse(jiraTimeLayout, ts); err == nil {
		return t.Format("2006-01-02")
	}
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// FormatDateTime shortens a Jira timestamp to minute precision.
func FormatDateTime(ts string) string {
	if t, err := time.Parse(jiraTimeLayout, ts); err == nil {
		return t.Format("2006-01-02 15:04")
	}
	return ts
}

// displayName returns the display name of a possibly nil user.
func displayName(u *jira.User) string {
	if u == nil {
		return ""
	}
	return u.DisplayName
}

// namedOrEmpty returns the name of a possibly nil named object.
func namedOrEmpty(n *jira.Named) string {
	if n == nil {
		return ""
	}
	return n.Name
}
