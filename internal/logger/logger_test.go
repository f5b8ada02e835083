package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlcheck/internal/config"
)

func TestBuilder_Console(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewBuilder().WithFormat(FormatJSON).WithConsole(&buf).Build()
	require.NoError(t, err)
	defer l.Close()

	log := l.Zerolog()
	log.Info().Str("component", "test").Msg("hello")
	assert.Contains(t, buf.String(), `"message":"hello"`)
	assert.Contains(t, buf.String(), `"component":"test"`)
}

func TestBuilder_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewBuilder().WithFormat(FormatJSON).WithLevel(zerolog.WarnLevel).WithConsole(&buf).Build()
	require.NoError(t, err)

	log := l.Zerolog()
	log.Info().Msg("dropped")
	assert.Empty(t, buf.String())
}

func TestBuilder_File(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "urlcheck.log")

	l, err := NewBuilder().
		WithLevel(zerolog.DebugLevel).
		WithFormat(FormatJSON).
		WithFile(logFile, 1, 1).
		WithConsole(nil).
		Build()
	require.NoError(t, err)

	log := l.Zerolog()
	log.Debug().Msg("this is a test")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"level":"debug"`)
	assert.Contains(t, string(content), `"message":"this is a test"`)
}

func TestBuilder_NoWriters(t *testing.T) {
	l, err := NewBuilder().WithConsole(nil).Build()
	require.NoError(t, err)
	assert.Equal(t, zerolog.Disabled, l.Zerolog().GetLevel())
	assert.NoError(t, l.Close())
}

func TestBuilder_WithConfig(t *testing.T) {
	_, err := NewBuilder().WithConfig(config.LogConfig{LogLevel: "nope"}).Build()
	assert.Error(t, err)

	logFile := filepath.Join(t.TempDir(), "cfg.log")
	l, err := NewBuilder().WithConsole(nil).WithConfig(config.LogConfig{
		LogFile:      logFile,
		LogLevel:     "warn",
		LogFormat:    "text",
		MaxLogSizeMB: 1,
	}).Build()
	require.NoError(t, err)
	log := l.Zerolog()
	log.Warn().Msg("careful")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "careful")
	assert.NotContains(t, string(content), "\x1b[")
}

func TestParsers(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)

	_, err = ParseLevel("invalid-level")
	assert.Error(t, err)

	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatText, ParseFormat("TEXT"))
	assert.Equal(t, FormatConsole, ParseFormat("unknown-format"))
}

func TestBuilder_ConsoleLevel(t *testing.T) {
	var console bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "levels.log")
	l, err := NewBuilder().
		WithFormat(FormatJSON).
		WithConsole(&console).
		WithConsoleLevel(zerolog.WarnLevel).
		WithFile(logFile, 1, 1).
		Build()
	require.NoError(t, err)

	log := l.Zerolog()
	log.Info().Msg("file only")
	log.Warn().Msg("both")
	require.NoError(t, l.Close())

	assert.NotContains(t, console.String(), "file only")
	assert.Contains(t, console.String(), "both")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "file only")
	assert.Contains(t, string(content), "both")
}
