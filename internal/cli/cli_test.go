package cli_test

import (
	"strings"
	"testing"

	"github.com/gi8lino/jiraterm/internal/cli"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noEnv keeps the real environment out of the tests.
func noEnv(string) string { return "" }

func TestParseArgs(t *testing.T) {
	t.Parallel()

	t.Run("issue with key and flags", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		cmd, err := cli.ParseArgs("v1", []string{"issue", "ABC-123", "--no-description", "--show-comments"}, &out, noEnv)
		require.NoError(t, err)

		assert.Equal(t, "issue", cmd.Name)
		assert.Equal(t, "ABC-123", cmd.Key)
		assert.True(t, cmd.NoDescription)
		assert.True(t, cmd.ShowComments)
		assert.Equal(t, cli.DefaultWidth, cmd.Width)
		assert.Equal(t, cli.DefaultMaxResults, cmd.MaxResults)
	})

	t.Run("issue listing with scope and bound", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		cmd, err := cli.ParseArgs("v1", []string{"issue", "-p", "INFRA", "-n", "2"}, &out, noEnv)
		require.NoError(t, err)

		assert.Equal(t, "issue", cmd.Name)
		assert.Empty(t, cmd.Key)
		assert.Equal(t, "INFRA", cmd.Scope)
		assert.Equal(t, 2, cmd.MaxResults)
	})

	t.Run("issue listing with columns and filter", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		cmd, err := cli.ParseArgs("v1", []string{"issue", "-c", "key,summary,assignee", "--filter", "status:Done", "--width", "140"}, &out, noEnv)
		require.NoError(t, err)

		assert.Equal(t, "key,summary,assignee", cmd.Columns)
		assert.Equal(t, "status:Done", cmd.Filter)
		assert.Equal(t, 140, cmd.Width)
	})

	t.Run("search with JQL", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		cmd, err := cli.ParseArgs("v1", []string{"search", "project = ABC", "-n", "5", "--describe"}, &out, noEnv)
		require.NoError(t, err)

		assert.Equal(t, "search", cmd.Name)
		assert.Equal(t, "project = ABC", cmd.JQL)
		assert.Equal(t, 5, cmd.MaxResults)
		assert.True(t, cmd.Describe)
	})

	t.Run("search without JQL fails", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		_, err := cli.ParseArgs("v1", []string{"search"}, &out, noEnv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JQL")
	})

	t.Run("comments with key", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		cmd, err := cli.ParseArgs("v1", []string{"comments", "ABC-123", "--width", "80"}, &out, noEnv)
		require.NoError(t, err)

		assert.Equal(t, "comments", cmd.Name)
		assert.Equal(t, "ABC-123", cmd.Key)
		assert.Equal(t, 80, cmd.Width)
	})

	t.Run("comments without key fails", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		_, err := cli.ParseArgs("v1", []string{"comments"}, &out, noEnv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "issue key")
	})

	t.Run("root dump flag", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		cmd, err := cli.ParseArgs("v1", []string{"--dump", "--profile", "web"}, &out, noEnv)
		require.NoError(t, err)

		assert.Empty(t, cmd.Name)
		assert.True(t, cmd.Dump)
		assert.Equal(t, "web", cmd.Profile)
	})

	t.Run("root examples flag", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		cmd, err := cli.ParseArgs("v1", []string{"--examples"}, &out, noEnv)
		require.NoError(t, err)
		assert.True(t, cmd.Examples)
	})

	t.Run("ascii and config propagate", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		cmd, err := cli.ParseArgs("v1", []string{"issue", "--ascii", "--config", "/tmp/cfg.yml"}, &out, noEnv)
		require.NoError(t, err)
		assert.True(t, cmd.ASCII)
		assert.Equal(t, "/tmp/cfg.yml", cmd.ConfigPath)
	})

	t.Run("log format choice", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		cmd, err := cli.ParseArgs("v1", []string{"issue", "--log-format", "json"}, &out, noEnv)
		require.NoError(t, err)
		assert.Equal(t, "json", string(cmd.LogFormat))
	})

	t.Run("unknown command fails", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		_, err := cli.ParseArgs("v1", []string{"frobnicate"}, &out, noEnv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown command "frobnicate"`)
	})
}

func TestPrintExamples(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	cli.PrintExamples(&out)

	assert.Contains(t, out.String(), "jiraterm issue ABC-123")
	assert.Contains(t, out.String(), "jiraterm search")
	assert.Contains(t, out.String(), "JIRA_BASE_URL")
}
