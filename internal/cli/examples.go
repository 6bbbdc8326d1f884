package cli

import (
	"fmt"
	"io"
)

// examplesText shows common invocations, printed by --examples.
const examplesText = `Examples:

  Show a single issue:
    jiraterm issue ABC-123
    jiraterm issue ABC-123 --no-description
    jiraterm issue ABC-123 --show-comments

  List issues assigned to you:
    jiraterm issue

  List issues of a project or profile:
    jiraterm issue -p INFRA -n 10
    jiraterm issue -p INFRA --filter 'status:"In Progress"'
    jiraterm issue -p INFRA -c key,summary,assignee,updated --width 140

  Search with JQL:
    jiraterm search 'project = ABC AND assignee = currentUser()'
    jiraterm search 'labels = urgent ORDER BY created DESC' -n 5 --describe
    jiraterm search 'project = ABC' --template '{{ .Key }} {{ .Fields.Summary | upper }}'

  Show the comment thread of an issue:
    jiraterm comments ABC-123 --width 80

  Inspect the resolved configuration (token redacted):
    jiraterm --dump
    jiraterm --dump --profile web

Configuration is read from ./.config.yml, then ~/.config/jiraterm/config.yml,
then the JIRA_BASE_URL, JIRA_EMAIL, JIRA_API_TOKEN, JIRA_DEFAULT_PROJECT and
JIRA_AUTH_METHOD environment variables (with an optional .env file).
`

// PrintExamples writes the usage examples to w.
func PrintExamples(w io.Writer) {
	fmt.Fprint(w, examplesText)
}
