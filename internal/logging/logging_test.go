package logging_test

import (
	"strings"
	"testing"

	"github.com/gi8lino/jiraterm/internal/logging"

	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	t.Parallel()

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		logger := logging.SetupLogger(logging.LogFormatText, false, &out)
		logger.Info("hello", "key", "value")

		assert.Contains(t, out.String(), "msg=hello")
		assert.Contains(t, out.String(), "key=value")
	})

	t.Run("json format", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		logger := logging.SetupLogger(logging.LogFormatJSON, false, &out)
		logger.Info("hello")

		assert.Contains(t, out.String(), `"msg":"hello"`)
	})

	t.Run("debug disabled by default", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		logger := logging.SetupLogger(logging.LogFormatText, false, &out)
		logger.Debug("hidden")

		assert.Empty(t, out.String())
	})

	t.Run("debug enabled", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		logger := logging.SetupLogger(logging.LogFormatText, true, &out)
		logger.Debug("visible")

		assert.Contains(t, out.String(), "msg=visible")
	})
}
