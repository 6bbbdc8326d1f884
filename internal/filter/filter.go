// Package filter applies local, case-insensitive substring filters over
// already-fetched issues. Filtering never touches the API: it operates on
// the single page the invocation fetched.
package filter

import (
	"fmt"
	"strings"

	"github.com/gi8lino/jiraterm/internal/jira"
	"github.com/gi8lino/jiraterm/internal/render"
)

// FilterError reports bad filter syntax or an unknown field name.
type FilterError struct {
	msg string
}

// Error implements the error interface.
func (e *FilterError) Error() string { return e.msg }

// newFilterError builds a FilterError with a formatted message.
func newFilterError(format string, args ...any) *FilterError {
	return &FilterError{msg: fmt.Sprintf(format, args...)}
}

// Clause is a single field:value condition. All clauses of an expression
// are ANDed together.
type Clause struct {
	Field string
	Value string
	col   render.Column
}

// Matches reports whether the issue's field representation contains the
// clause value, case-insensitively.
func (c Clause) Matches(issue jira.Issue) bool {
	return strings.Contains(
		strings.ToLower(c.col.Extract(issue)),
		strings.ToLower(c.Value),
	)
}

// Parse splits a comma-separated list of field:"value" clauses. Quotes are
// optional when the value contains no comma. Field names must exist in the
// column registry.
func Parse(expr string) ([]Clause, error) {
	parts, err := splitClauses(expr)
	if err != nil {
		return nil, err
	}

	clauses := make([]Clause, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		field, value, ok := strings.Cut(part, ":")
		if !ok {
			return nil, newFilterError("invalid filter clause %q: expected field:value", part)
		}

		field = strings.ToLower(strings.TrimSpace(field))
		value = unquote(strings.TrimSpace(value))
		if value == "" {
			return nil, newFilterError("invalid filter clause %q: empty value", part)
		}

		col, found := render.Lookup(field)
		if !found {
			return nil, newFilterError("unknown filter field %q (known: %s)", field, strings.Join(render.Names(), ", "))
		}

		clauses = append(clauses, Clause{Field: field, Value: value, col: col})
	}

	if len(clauses) == 0 {
		return nil, newFilterError("empty filter expression")
	}
	return clauses, nil
}

// Apply filters issues by expr, preserving input order. An empty expression
// returns the input unchanged.
func Apply(issues []jira.Issue, expr string) ([]jira.Issue, error) {
	if strings.TrimSpace(expr) == "" {
		return issues, nil
	}

	clauses, err := Parse(expr)
	if err != nil {
		return nil, err
	}

	out := make([]jira.Issue, 0, len(issues))
	for _, issue := range issues {
		keep := true
		for _, c := range clauses {
			if !c.Matches(issue) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, issue)
		}
	}
	return out, nil
}

// splitClauses splits on commas that are not inside double quotes.
func splitClauses(expr string) ([]string, error) {
	var parts []string
	var cur strings.Builder
	inQuotes := false

	for _, r := range expr {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ',' && !inQuotes:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if inQuotes {
		return nil, newFilterError("unterminated quote in filter expression %q", expr)
	}
	parts = append(parts, cur.String())
	return parts, nil
}

// unquote strips one pair of surrounding double quotes.
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
