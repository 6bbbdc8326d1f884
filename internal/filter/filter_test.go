package filter_test

import (
	"testing"

	"github.com/gi8lino/jiraterm/internal/filter"
	"github.com/gi8lino/jiraterm/internal/jira"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issues() []jira.Issue {
	return []jira.Issue{
		{Key: "A-1", Fields: jira.Fields{Summary: "Fix login page", Status: jira.Named{Name: "Done"}, Labels: []string{"auth", "web"}}},
		{Key: "A-2", Fields: jira.Fields{Summary: "Add logout", Status: jira.Named{Name: "In Progress"}, Labels: []string{"auth"}}},
		{Key: "A-3", Fields: jira.Fields{Summary: "Update docs", Status: jira.Named{Name: "Done"}, Labels: nil}},
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("single clause", func(t *testing.T) {
		t.Parallel()

		clauses, err := filter.Parse(`status:Done`)
		require.NoError(t, err)
		require.Len(t, clauses, 1)
		assert.Equal(t, "status", clauses[0].Field)
		assert.Equal(t, "Done", clauses[0].Value)
	})

	t.Run("quoted value with comma", func(t *testing.T) {
		t.Parallel()

		clauses, err := filter.Parse(`summary:"login, logout",status:Done`)
		require.NoError(t, err)
		require.Len(t, clauses, 2)
		assert.Equal(t, "login, logout", clauses[0].Value)
	})

	t.Run("unknown field fails", func(t *testing.T) {
		t.Parallel()

		_, err := filter.Parse(`sprint:Q3`)
		require.Error(t, err)

		var filterErr *filter.FilterError
		require.ErrorAs(t, err, &filterErr)
		assert.Contains(t, err.Error(), `unknown filter field "sprint"`)
	})

	t.Run("missing colon fails", func(t *testing.T) {
		t.Parallel()

		_, err := filter.Parse(`justavalue`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected field:value")
	})

	t.Run("unterminated quote fails", func(t *testing.T) {
		t.Parallel()

		_, err := filter.Parse(`summary:"oops`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unterminated quote")
	})

	t.Run("empty expression fails", func(t *testing.T) {
		t.Parallel()

		_, err := filter.Parse(`  ,  `)
		require.Error(t, err)
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("status substring is case-insensitive and order-preserving", func(t *testing.T) {
		t.Parallel()

		got, err := filter.Apply(issues(), `status:Done`)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "A-1", got[0].Key)
		assert.Equal(t, "A-3", got[1].Key)
	})

	t.Run("clauses are ANDed", func(t *testing.T) {
		t.Parallel()

		got, err := filter.Apply(issues(), `status:done,summary:login`)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "A-1", got[0].Key)
	})

	t.Run("labels match against joined list", func(t *testing.T) {
		t.Parallel()

		got, err := filter.Apply(issues(), `labels:web`)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "A-1", got[0].Key)
	})

	t.Run("empty expression passes through", func(t *testing.T) {
		t.Parallel()

		got, err := filter.Apply(issues(), "")
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		t.Parallel()

		got, err := filter.Apply(issues(), `summary:nonexistent`)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
