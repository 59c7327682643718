package closestpoint

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/closestpoint/query"
)

// Logger wraps slog.Logger with closestpoint-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// LogQuery logs a completed query.
func (l *Logger) LogQuery(ctx context.Context, kind string, maxResults, results int, stats query.Stats) {
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}

	attrs := []any{
		"kind", kind,
		"algorithm", stats.Algorithm.String(),
		"results", results,
		"points_evaluated", stats.PointsEvaluated,
		"cells_processed", stats.CellsProcessed,
	}
	if maxResults != query.MaxMaxResults {
		attrs = append(attrs, "max_results", maxResults)
	}

	l.DebugContext(ctx, "query completed", attrs...)
}

// LogBatch logs a completed batch.
func (l *Logger) LogBatch(ctx context.Context, targets, workers int, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch query aborted",
			"targets", targets,
			"workers", workers,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "batch query completed",
			"targets", targets,
			"workers", workers,
		)
	}
}
