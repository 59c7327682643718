package closestpoint

import (
	"context"
	"time"

	"github.com/hupe1980/closestpoint/distance"
	"github.com/hupe1980/closestpoint/index"
	"github.com/hupe1980/closestpoint/query"
)

// runner wraps an engine with logging and metrics.
type runner[D distance.Distance[D], T any] struct {
	engine  *query.Engine[D, T]
	kind    string
	logger  *Logger
	metrics MetricsCollector
}

func newRunner[D distance.Distance[D], T any](idx *index.PointIndex[T], kind string, o options) runner[D, T] {
	return runner[D, T]{
		engine:  query.New[D, T](idx, query.WithLogger(o.logger.Logger)),
		kind:    kind,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
}

func (r *runner[D, T]) findAll(ctx context.Context, tgt query.Target[D], opts query.Options[D]) []query.Result[D, T] {
	start := time.Now()
	results := r.engine.FindClosestPoints(tgt, opts)
	r.record(ctx, opts.MaxResults, len(results), start)
	return results
}

func (r *runner[D, T]) findOne(ctx context.Context, tgt query.Target[D], opts query.Options[D]) query.Result[D, T] {
	start := time.Now()
	opts.MaxResults = 1
	result := r.engine.FindClosestPoint(tgt, opts)

	n := 0
	if !result.IsEmpty() {
		n = 1
	}
	r.record(ctx, 1, n, start)
	return result
}

func (r *runner[D, T]) record(ctx context.Context, maxResults, results int, start time.Time) {
	stats := r.engine.Stats()
	r.metrics.RecordQuery(r.kind, results, stats, time.Since(start))
	r.logger.LogQuery(ctx, r.kind, maxResults, results, stats)
}
