// FILE: logpane/src/internal/format/json_test.go
package format

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"logpane/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatter_Format(t *testing.T) {
	logger := newTestLogger()
	testTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	r := core.Record{
		Seq:     3,
		Time:    testTime,
		Target:  "test-app",
		Level:   core.LevelInfo,
		Message: `this is a "test"`,
	}

	t.Run("BasicFormatting", func(t *testing.T) {
		formatter, err := NewJSONFormatter(Options{}, logger)
		require.NoError(t, err)

		output, err := formatter.Format(r)
		require.NoError(t, err)

		var result map[string]any
		require.NoError(t, json.Unmarshal(output, &result), "Output should be valid JSON")

		assert.Equal(t, testTime.Format(time.RFC3339Nano), result["time"])
		assert.Equal(t, "INFO", result["level"])
		assert.Equal(t, "test-app", result["target"])
		assert.Equal(t, `this is a "test"`, result["message"])
		assert.Equal(t, float64(3), result["seq"])
		assert.True(t, strings.HasSuffix(string(output), "\n"), "Output should end with a newline")
	})

	t.Run("PrettyFormatting", func(t *testing.T) {
		formatter, err := NewJSONFormatter(Options{Pretty: true}, logger)
		require.NoError(t, err)

		output, err := formatter.Format(r)
		require.NoError(t, err)
		assert.Contains(t, string(output), `  "level": "INFO"`)
	})

	t.Run("EmptyTargetOmitted", func(t *testing.T) {
		formatter, err := NewJSONFormatter(Options{}, logger)
		require.NoError(t, err)

		noTarget := r
		noTarget.Target = ""
		output, err := formatter.Format(noTarget)
		require.NoError(t, err)
		assert.NotContains(t, string(output), "target")
	})
}

func TestJSONFormatter_FormatBatch(t *testing.T) {
	formatter, err := NewJSONFormatter(Options{}, newTestLogger())
	require.NoError(t, err)

	records := []core.Record{
		{Seq: 1, Level: core.LevelError, Message: "a"},
		{Seq: 2, Level: core.LevelDebug, Message: "b"},
	}
	output, err := formatter.FormatBatch(records)
	require.NoError(t, err)

	var result []map[string]any
	require.NoError(t, json.Unmarshal(output, &result))
	require.Len(t, result, 2)
	assert.Equal(t, "ERROR", result[0]["level"])
	assert.Equal(t, "b", result[1]["message"])
}
