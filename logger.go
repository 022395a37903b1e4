package tickscan

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with tickscan-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithBufferSize adds a buffer_size field to the logger.
func (l *Logger) WithBufferSize(size int) *Logger {
	return &Logger{
		Logger: l.Logger.With("buffer_size", size),
	}
}

// LogScan logs a completed or failed scan.
func (l *Logger) LogScan(ctx context.Context, records, matched, skipped uint64, bytesRead int64, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "scan failed",
			"records", records,
			"bytes_read", bytesRead,
			"duration", duration,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "scan completed",
		"records", records,
		"matched", matched,
		"skipped", skipped,
		"bytes_read", bytesRead,
		"duration", duration,
	)
}
