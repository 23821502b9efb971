package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonAdapter(level string) (Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogrusAdapterWithOutput(level, "json", &buf), &buf
}

// lines decodes every JSON entry written to buf.
func lines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{level: "info", format: "json", expectLevel: logrus.InfoLevel},
		{level: "warn", format: "text", expectLevel: logrus.WarnLevel},
		{level: "error", format: "json", expectLevel: logrus.ErrorLevel},
		{level: "bogus", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			adapter, ok := NewLogrusAdapter(tt.level, tt.format).(*LogrusAdapter)
			require.True(t, ok)
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			if tt.format == "json" {
				assert.IsType(t, &logrus.JSONFormatter{}, adapter.logger.Formatter)
			} else {
				assert.IsType(t, &logrus.TextFormatter{}, adapter.logger.Formatter)
			}
		})
	}
}

func TestLogrusAdapter_Levels(t *testing.T) {
	logger, buf := jsonAdapter("warn")

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("Dangling reference, valuing as Unknown", Field{Key: FieldAccountID, Value: "a-9"})
	logger.Error("Save failed")

	entries := lines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "warning", entries[0]["level"])
	assert.Equal(t, "a-9", entries[0][FieldAccountID])
	assert.Equal(t, "error", entries[1]["level"])
	assert.Equal(t, "Save failed", entries[1]["msg"])
}

func TestLogrusAdapter_DerivedLoggers(t *testing.T) {
	logger, buf := jsonAdapter("debug")

	store := logger.WithComponent("store")
	store.WithError(errors.New("disk full")).
		WithFields(Field{Key: FieldFile, Value: "/tmp/data.json"}).
		Error("Write failed")
	logger.Info("Unrelated")

	entries := lines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "store", entries[0][FieldComponent])
	assert.Equal(t, "disk full", entries[0]["error"])
	assert.Equal(t, "/tmp/data.json", entries[0][FieldFile])

	_, tagged := entries[1][FieldComponent]
	assert.False(t, tagged, "parent logger must not inherit derived fields")
}

func TestLogrusAdapter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterWithOutput("info", "text", &buf)

	logger.Info("Built net worth series", Field{Key: FieldCount, Value: 3})

	out := buf.String()
	assert.Contains(t, out, "Built net worth series")
	assert.Contains(t, out, "count=3")
}

func TestToLogrus(t *testing.T) {
	assert.Empty(t, toLogrus(nil))
	assert.Equal(t, logrus.Fields{"a": 1, "b": "x"}, toLogrus([]Field{{Key: "a", Value: 1}, {Key: "b", Value: "x"}}))
}

func TestLogrusAdapter_ImplementsInterface(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}
