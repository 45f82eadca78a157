package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleOutputFormat(t *testing.T) {
	var buf bytes.Buffer
	out := &ConsoleOutput{writer: &buf, color: false}

	err := out.Write(LogEntry{
		Time:       time.Now().UnixNano(),
		Severity:   INFO,
		Message:    "generation complete",
		File:       "engine.go",
		Line:       42,
		RunID:      "run-1",
		Generation: 3,
		Fields:     map[string]interface{}{"mean": 1.5},
	})
	require.NoError(t, err)

	line := buf.String()
	assert.Contains(t, line, "INFO")
	assert.Contains(t, line, "[engine.go:42]")
	assert.Contains(t, line, "generation complete")
	assert.Contains(t, line, "[run=run-1]")
	assert.Contains(t, line, "[gen=3]")
	assert.Contains(t, line, "mean=1.5")
}

func TestConsoleOutputTruncatesLongFields(t *testing.T) {
	var buf bytes.Buffer
	out := &ConsoleOutput{writer: &buf, color: false}

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	err := out.Write(LogEntry{
		Time:     time.Now().UnixNano(),
		Severity: DEBUG,
		Message:  "best individual",
		Fields:   map[string]interface{}{"summary": string(long)},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "...")
	assert.Less(t, buf.Len(), 300)
}

func TestFileOutputWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	out, err := NewFileOutput(path)
	require.NoError(t, err)

	require.NoError(t, out.Write(LogEntry{
		Time:     time.Now().UnixNano(),
		Severity: WARN,
		Message:  "first",
	}))
	require.NoError(t, out.Write(LogEntry{
		Time:       time.Now().UnixNano(),
		Severity:   INFO,
		Message:    "second",
		Generation: 2,
	}))
	require.NoError(t, out.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, lines, 2)
	assert.Equal(t, "WARN", lines[0]["severity"])
	assert.Equal(t, "first", lines[0]["message"])
	assert.Equal(t, "second", lines[1]["message"])
	assert.Equal(t, float64(2), lines[1]["generation"])
}
