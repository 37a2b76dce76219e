package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ekisa-team/scivision/internal/env"
	"github.com/ekisa-team/scivision/internal/xfs"
	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogFile    = "logs/scivision.log"
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 28
)

type options struct {
	level     slog.Level
	logToFile bool
	logFile   string
	console   io.Writer
	noColor   bool
}

// Option configures the logger.
type Option func(*options)

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithLogToFile enables the rotating log file.
func WithLogToFile(enabled bool) Option {
	return func(o *options) {
		o.logToFile = enabled
	}
}

// WithLogFile sets the rotating log file path.
func WithLogFile(path string) Option {
	return func(o *options) {
		if path != "" {
			o.logFile = path
		}
	}
}

// WithConsole sets the console writer, os.Stderr by default.
func WithConsole(w io.Writer) Option {
	return func(o *options) {
		o.console = w
	}
}

// WithNoColor disables ANSI colors on the development console.
func WithNoColor(noColor bool) Option {
	return func(o *options) {
		o.noColor = noColor
	}
}

// New builds a logger for environment e. Development logs are colored
// text, production logs are JSON. The optional log file is always JSON.
func New(e env.Environment, opts ...Option) *slog.Logger {
	o := &options{
		level:   slog.LevelInfo,
		logFile: defaultLogFile,
		console: os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}

	var console slog.Handler
	if e.IsProduction() {
		console = slog.NewJSONHandler(o.console, &slog.HandlerOptions{Level: o.level})
	} else {
		console = tint.NewHandler(o.console, &tint.Options{
			Level:      o.level,
			TimeFormat: time.Kitchen,
			NoColor:    o.noColor,
		})
	}

	if !o.logToFile {
		return slog.New(console)
	}

	path := xfs.ExpandTilde(o.logFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		slog.New(console).Warn("Failed to create log directory, file logging disabled", "path", path, "error", err)
		return slog.New(console)
	}

	file := slog.NewJSONHandler(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    defaultMaxSizeMB,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAgeDays,
		Compress:   true,
	}, &slog.HandlerOptions{Level: o.level})

	return slog.New(&fanout{handlers: []slog.Handler{console, file}})
}

// ParseLevel converts a level name such as "debug" into a slog.Level.
// Unknown names fall back to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
