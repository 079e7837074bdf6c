package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `
title: Groceries
surface:
  width: 40
  height: 8
sections:
  - id: fruit
    header: Fruit
    items:
      - text: Apple
        selected: true
      - text: Banana
`

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var stdout, stderr bytes.Buffer
	root := New("v0.0.0-test")
	root.Writer = &stdout
	root.ErrWriter = &stderr
	err := root.Run(context.Background(), append([]string{name}, args...))
	return stdout.String(), stderr.String(), err
}

func writeDoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "carbon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRenderFrame(t *testing.T) {
	out, _, err := run(t, "--config", writeDoc(t, doc), "render")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "Groceries", lines[0])
	// Title, blank line, then one line per surface row.
	assert.Len(t, lines, 2+8)
	assert.Contains(t, out, "Fruit")
	assert.Contains(t, out, "● Apple")
	assert.Contains(t, out, "○ Banana")
}

func TestRenderHeightOverride(t *testing.T) {
	out, _, err := run(t, "--config", writeDoc(t, doc), "--height", "3", "render")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 2+3)
}

func TestRenderMeasure(t *testing.T) {
	out, _, err := run(t, "--config", writeDoc(t, doc), "render", "--measure")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "[0, 0]"))
	assert.Contains(t, lines[0], "49x13")
	assert.Contains(t, lines[1], "fruit/Banana")
}

func TestRenderInvalidConfig(t *testing.T) {
	_, _, err := run(t, "--config", writeDoc(t, "version: v2.0.0\n"), "render")
	assert.ErrorContains(t, err, "unsupported version")

	_, _, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "render")
	assert.ErrorContains(t, err, "failed to read")
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := run(t, "--log-level", "loud", "--config", writeDoc(t, doc), "render")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestDebugLogsGoToErrWriter(t *testing.T) {
	_, stderr, err := run(t, "--log-level", "debug", "--config", writeDoc(t, doc), "render")
	require.NoError(t, err)

	var found bool
	for _, line := range strings.Split(strings.TrimSpace(stderr), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec), line)
		assert.Equal(t, name, rec["module"])
		assert.Equal(t, "v0.0.0-test", rec["version"])
		if rec["msg"] == "config resolved" {
			found = true
			assert.Equal(t, "Groceries", rec["title"])
		}
	}
	assert.True(t, found)
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carbon.log")
	_, stderr, err := run(t, "--log-level", "debug", "--log-file", path, "--config", writeDoc(t, doc), "render")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "config resolved")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "WARN", "v1")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.NotContains(t, buf.String(), `"source"`)
}
