package kanjigo

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with kanjigo-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
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

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithGeneration adds the catalog generation to the logger.
func (l *Logger) WithGeneration(gen uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("generation", gen),
	}
}

// LogQuery logs a query.
func (l *Logger) LogQuery(ctx context.Context, input string, results int, cached bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"input", input,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "query completed",
		"input", input,
		"results", results,
		"cached", cached,
	)
}

// LogLoad logs a cache load.
func (l *Logger) LogLoad(ctx context.Context, records int, d time.Duration, err error) {
	if err != nil {
		l.InfoContext(ctx, "cache unusable, rebuilding",
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "catalog loaded from cache",
		"records", records,
		"duration", d,
	)
}

// LogSave logs a cache write.
func (l *Logger) LogSave(ctx context.Context, name string, err error) {
	if err != nil {
		l.WarnContext(ctx, "cache write failed",
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "cache written",
		"name", name,
	)
}

// LogBuild logs a build from source.
func (l *Logger) LogBuild(ctx context.Context, src string, records, duplicates int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"source", src,
			"error", err,
		)
		return
	}
	if duplicates > 0 {
		l.WarnContext(ctx, "build dropped duplicate characters",
			"source", src,
			"duplicates", duplicates,
		)
	}
	l.InfoContext(ctx, "catalog built",
		"source", src,
		"records", records,
		"duration", d,
	)
}

// LogReload logs a reload.
func (l *Logger) LogReload(ctx context.Context, gen uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "reload failed",
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "catalog reloaded",
		"generation", gen,
	)
}
