// Package templates renders issues through user-supplied Go templates,
// as an alternative to the built-in table layout.
package templates

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/gi8lino/jiraterm/internal/jira"
	"github.com/gi8lino/jiraterm/internal/render"

	"github.com/Masterminds/sprig/v3"
)

// FuncMap returns the sprig text function map extended with issue helpers.
func FuncMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["wrap"] = func(width int, s string) string { return render.Wrap(s, width) }
	funcs["date"] = render.FormatDate
	funcs["datetime"] = render.FormatDateTime
	return funcs
}

// RenderIssues executes the template once per issue, writing one line (or
// block) per issue to w. The issue record is the template's dot.
func RenderIssues(w io.Writer, text string, issues []jira.Issue) error {
	tmpl, err := template.New("issue").Funcs(FuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	for _, issue := range issues {
		var line strings.Builder
		if err := tmpl.Execute(&line, issue); err != nil {
			return fmt.Errorf("execute template for %s: %w", issue.Key, err)
		}
		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
