package logger

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger so packages share one structured logging surface.
type Logger struct {
	*slog.Logger
}

// New creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewText creates a Logger that outputs human-readable text logs to stderr.
// level sets the minimum log level (e.g. slog.LevelDebug, slog.LevelInfo).
func NewText(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// Noop creates a Logger that discards all log output.
func Noop() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithComponent tags the logger with the subsystem it logs for.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", name),
	}
}

// WithSource tags the logger with the dataset source being attempted.
func (l *Logger) WithSource(src string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", src),
	}
}
