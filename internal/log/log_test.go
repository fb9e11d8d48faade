package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrite_Format(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	Info(CatSelection, "pointer down", "cell", "1:2", "phase", "dragging")

	line := buf.String()
	require.Contains(t, line, "[INFO] [selection] pointer down")
	require.Contains(t, line, "cell=1:2")
	require.Contains(t, line, "phase=dragging")
	require.True(t, strings.HasSuffix(line, "\n"))
}

func TestWrite_OddFields(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	Warn(CatClipboard, "odd", "orphan")
	require.Contains(t, buf.String(), "orphan=<missing>")
}

func TestWrite_MinLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	SetMinLevel(LevelWarn)
	Debug(CatGrid, "hidden")
	Info(CatGrid, "hidden")
	Error(CatGrid, "shown")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "[ERROR] [grid] shown")
}

func TestWrite_Disabled(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	SetEnabled(false)
	Error(CatEdit, "dropped")
	require.Empty(t, buf.String())
}

func TestWrite_NoLogger(t *testing.T) {
	Reset()
	require.NotPanics(t, func() {
		Debug(CatUI, "nothing installed")
		SetEnabled(true)
		SetMinLevel(LevelError)
	})
}

func TestErrorErr(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	ErrorErr(CatSource, "load failed", os.ErrNotExist, "path", "users.csv")
	ErrorErr(CatSource, "nil err", nil)

	out := buf.String()
	require.Contains(t, out, "path=users.csv error=file does not exist")
	require.Contains(t, out, "error=<nil>")
}

func TestInit_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	t.Cleanup(Reset)

	Info(CatConfig, "loaded")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO] [config] loaded")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" warning ", LevelWarn},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelDebug},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}
