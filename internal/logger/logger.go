package logger

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"urlcheck/internal/config"
)

// LogFormat represents available log formats
type LogFormat int

const (
	FormatJSON LogFormat = iota
	FormatConsole
	FormatText
)

func (lf LogFormat) String() string {
	switch lf {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return "console"
	}
}

// ParseFormat maps a config string to a LogFormat, falling back to console.
func ParseFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatConsole
	}
}

// ParseLevel maps a config string to a zerolog level.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(s))
}

// Logger owns a zerolog logger and the file it may write to.
type Logger struct {
	zerolog zerolog.Logger
	file    *lumberjack.Logger
}

// Zerolog returns the underlying zerolog instance
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zerolog
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Builder provides a fluent interface for building loggers.
type Builder struct {
	level        zerolog.Level
	format       LogFormat
	consoleFmt   LogFormat
	consoleLevel zerolog.Level
	console      io.Writer
	filePath     string
	maxSizeMB    int
	maxBackups   int
	err          error
}

func NewBuilder() *Builder {
	return &Builder{
		level:        zerolog.InfoLevel,
		format:       FormatConsole,
		consoleFmt:   FormatConsole,
		consoleLevel: zerolog.TraceLevel,
		console:      os.Stderr,
		maxSizeMB:    config.DefaultMaxLogSizeMB,
		maxBackups:   config.DefaultMaxLogBackups,
	}
}

// WithConfig applies level and file settings from cfg. The configured
// format applies to the file; the console keeps its own format.
func (b *Builder) WithConfig(cfg config.LogConfig) *Builder {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		b.err = err
	}
	b.level = level
	b.format = ParseFormat(cfg.LogFormat)
	b.filePath = cfg.LogFile
	if cfg.MaxLogSizeMB > 0 {
		b.maxSizeMB = cfg.MaxLogSizeMB
	}
	if cfg.MaxLogBackups >= 0 {
		b.maxBackups = cfg.MaxLogBackups
	}
	return b
}

func (b *Builder) WithLevel(level zerolog.Level) *Builder {
	b.level = level
	return b
}

// WithFormat sets the format of both console and file output.
func (b *Builder) WithFormat(format LogFormat) *Builder {
	b.format = format
	b.consoleFmt = format
	return b
}

// WithConsoleLevel drops console events below level; the file is unaffected.
func (b *Builder) WithConsoleLevel(level zerolog.Level) *Builder {
	b.consoleLevel = level
	return b
}

// WithConsole sets the console destination; nil disables console output.
func (b *Builder) WithConsole(w io.Writer) *Builder {
	b.console = w
	return b
}

// WithFile enables rotating file output; an empty path disables it.
func (b *Builder) WithFile(path string, maxSizeMB, maxBackups int) *Builder {
	b.filePath = path
	b.maxSizeMB = maxSizeMB
	b.maxBackups = maxBackups
	return b
}

// Build creates the logger. With no writers configured the logger discards.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.filePath != "" && b.maxSizeMB <= 0 {
		return nil, errors.New("logger: max size must be positive")
	}

	var writers []io.Writer
	if b.console != nil {
		writers = append(writers, b.consoleWriter(b.console))
	}
	l := &Logger{}
	if b.filePath != "" {
		if err := os.MkdirAll(filepath.Dir(b.filePath), 0o700); err != nil {
			return nil, err
		}
		l.file = &lumberjack.Logger{
			Filename:   b.filePath,
			MaxSize:    b.maxSizeMB,
			MaxBackups: b.maxBackups,
			LocalTime:  true,
		}
		writers = append(writers, b.fileWriter(l.file))
	}
	if len(writers) == 0 {
		l.zerolog = zerolog.Nop()
		return l, nil
	}

	l.zerolog = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(b.level).
		With().
		Timestamp().
		Logger()
	return l, nil
}

func (b *Builder) consoleWriter(out io.Writer) io.Writer {
	var w io.Writer
	switch b.consoleFmt {
	case FormatJSON:
		w = out
	case FormatText:
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	default:
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	if b.consoleLevel <= zerolog.TraceLevel {
		return w
	}
	return &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: w},
		Level:  b.consoleLevel,
	}
}

// fileWriter never emits colour codes.
func (b *Builder) fileWriter(out io.Writer) io.Writer {
	if b.format == FormatJSON {
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
}
