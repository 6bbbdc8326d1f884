package render_test

import (
	"testing"

	"github.com/gi8lino/jiraterm/internal/jira"
	"github.com/gi8lino/jiraterm/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumns(t *testing.T) {
	t.Parallel()

	t.Run("empty spec yields defaults", func(t *testing.T) {
		t.Parallel()

		cols, err := render.ParseColumns("")
		require.NoError(t, err)
		require.Len(t, cols, 3)
		assert.Equal(t, "key", cols[0].Name)
		assert.Equal(t, "summary", cols[1].Name)
		assert.Equal(t, "status", cols[2].Name)
	})

	t.Run("names match case-insensitively", func(t *testing.T) {
		t.Parallel()

		cols, err := render.ParseColumns("KEY,Assignee")
		require.NoError(t, err)
		require.Len(t, cols, 2)
		assert.Equal(t, "key", cols[0].Name)
		assert.Equal(t, "assignee", cols[1].Name)
	})

	t.Run("unknown column fails with known names", func(t *testing.T) {
		t.Parallel()

		_, err := render.ParseColumns("key,bogus")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown column "bogus"`)
		assert.Contains(t, err.Error(), "summary")
	})
}

func TestExtractors(t *testing.T) {
	t.Parallel()

	issue := jira.Issue{
		Key: "INFRA-7",
		Fields: jira.Fields{
			Summary:   "Replace the flux capacitor",
			IssueType: jira.Named{Name: "Task"},
			Status:    jira.Named{Name: "Done"},
			Assignee:  &jira.User{DisplayName: "Ada"},
			Labels:    []string{"ops", "urgent"},
			Created:   "2024-03-01T10:14:00.000+0000",
		},
	}

	t.Run("simple fields", func(t *testing.T) {
		t.Parallel()

		for name, want := range map[string]string{
			"key":      "INFRA-7",
			"summary":  "Replace the flux capacitor",
			"type":     "Task",
			"status":   "Done",
			"assignee": "Ada",
			"labels":   "ops,urgent",
			"created":  "2024-03-01",
		} {
			c, ok := render.Lookup(name)
			require.True(t, ok, name)
			assert.Equal(t, want, c.Extract(issue), name)
		}
	})

	t.Run("nil users and priority are empty", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"reporter", "priority"} {
			c, ok := render.Lookup(name)
			require.True(t, ok, name)
			assert.Empty(t, c.Extract(issue), name)
		}
	})
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	t.Run("jira timestamp", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2024-03-01", render.FormatDate("2024-03-01T10:14:00.000+0000"))
	})

	t.Run("unparseable long value keeps date prefix", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2024-03-01", render.FormatDate("2024-03-01 oddness"))
	})

	t.Run("short value passes through", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "n/a", render.FormatDate("n/a"))
	})
}
