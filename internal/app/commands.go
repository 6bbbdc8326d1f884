package app

import (
	"context"
	"fmt"
	"io"

	"github.com/gi8lino/jiraterm/internal/cli"
	"github.com/gi8lino/jiraterm/internal/filter"
	"github.com/gi8lino/jiraterm/internal/jira"
	"github.com/gi8lino/jiraterm/internal/render"
	"github.com/gi8lino/jiraterm/internal/templates"
)

// runIssue shows a single issue when a key is given, otherwise lists issues
// assigned to the current user or scoped to a project.
func runIssue(ctx context.Context, api jira.API, cmd cli.Command, project string, out io.Writer, styles render.Styles) error {
	if cmd.Key != "" {
		issue, err := api.GetIssue(ctx, cmd.Key, cmd.ShowComments)
		if err != nil {
			return err
		}

		render.Issue(out, *issue, !cmd.NoDescription, cmd.Width, styles)

		if cmd.ShowComments {
			var comments []jira.Comment
			if issue.Fields.Comment != nil {
				comments = issue.Fields.Comment.Comments
			}
			render.Comments(out, issue.Key, comments, cmd.Width, styles)
		}
		return nil
	}

	jql := "assignee = currentUser() ORDER BY updated DESC"
	if project != "" {
		jql = fmt.Sprintf("project = %s ORDER BY updated DESC", project)
	}

	issues, err := api.SearchIssues(ctx, jql, cmd.MaxResults)
	if err != nil {
		return err
	}
	return renderListing(out, issues, cmd, styles)
}

// runSearch executes a literal JQL query and renders the result listing.
func runSearch(ctx context.Context, api jira.API, cmd cli.Command, out io.Writer, styles render.Styles) error {
	issues, err := api.SearchIssues(ctx, cmd.JQL, cmd.MaxResults)
	if err != nil {
		return err
	}
	return renderListing(out, issues, cmd, styles)
}

// runComments fetches and renders the comment thread of one issue.
func runComments(ctx context.Context, api jira.API, cmd cli.Command, out io.Writer, styles render.Styles) error {
	comments, err := api.GetComments(ctx, cmd.Key)
	if err != nil {
		return err
	}

	render.Comments(out, cmd.Key, comments, cmd.Width, styles)
	return nil
}

// renderListing is the shared output path for issue listings and searches.
// The result-count limit bounds the API fetch; the filter runs locally on
// the fetched page.
func renderListing(out io.Writer, issues []jira.Issue, cmd cli.Command, styles render.Styles) error {
	issues, err := filter.Apply(issues, cmd.Filter)
	if err != nil {
		return err
	}

	if len(issues) == 0 {
		fmt.Fprintln(out, "No issues found.")
		return nil
	}

	if cmd.Template != "" {
		return templates.RenderIssues(out, cmd.Template, issues)
	}

	cols, err := render.ParseColumns(cmd.Columns)
	if err != nil {
		return err
	}
	render.Table(out, issues, cols, cmd.Width, styles)

	if cmd.Describe {
		fmt.Fprintln(out)
		for _, issue := range issues {
			render.Issue(out, issue, true, cmd.Width, styles)
		}
	}
	return nil
}
