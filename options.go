package closestpoint

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/closestpoint/resource"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	parallelism      int
	resources        *resource.Controller
}

// Option configures query construction.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring queries.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &closestpoint.BasicMetricsCollector{}
//	q := closestpoint.NewClosestPointQuery(idx, closestpoint.WithMetricsCollector(metrics))
//	// ... run queries ...
//	stats := metrics.GetStats()
//	fmt.Printf("Queries: %d, Avg latency: %dns\n", stats.QueryCount, stats.AvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for queries.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := closestpoint.NewJSONLogger(slog.LevelDebug)
//	q := closestpoint.NewClosestPointQuery(idx, closestpoint.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithParallelism sets the number of workers used by FindClosestPointsBatch.
// Values below 1 select runtime.GOMAXPROCS(0).
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithResourceController admits every query of FindClosestPointsBatch and
// FindFurthestPointsBatch through rc. Sharing one controller between batches
// bounds their combined concurrency and query rate.
//
// Example:
//
//	rc := resource.NewController(resource.Config{MaxConcurrentQueries: 8, QueriesPerSecond: 500})
//	results, err := closestpoint.FindClosestPointsBatch(ctx, idx, targets, nil,
//	    closestpoint.WithResourceController(rc))
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.parallelism < 1 {
		o.parallelism = runtime.GOMAXPROCS(0)
	}
	return o
}
