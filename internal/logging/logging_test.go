package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Warn)

	logger.Info("hidden", F("k", "v"))
	logger.Warn("shown", F("status", 500))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "500")
	assert.False(t, logger.Enabled(Info))
	assert.True(t, logger.Enabled(Error))
}

func TestLoggerWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Debug).With(F("component", "client"))
	logger.Debug("request", F("err", errors.New("boom")))

	out := buf.String()
	assert.Contains(t, out, "client")
	assert.Contains(t, out, "boom")
}

func TestNewFileWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ui.log")
	logger, err := NewFile(path, Info)
	require.NoError(t, err)

	logger.Info("session started", F("session_id", "s1"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "session started", entry["msg"])
	assert.Equal(t, "s1", entry["session_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel(" DEBUG "))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Error, ParseLevel("error"))
	assert.Equal(t, Info, ParseLevel("nonsense"))
}

func TestNopIsSilent(t *testing.T) {
	logger := Nop()
	logger.Error("ignored")
	assert.False(t, logger.Enabled(Debug))
	assert.NoError(t, logger.Sync())
}
