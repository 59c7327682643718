package closestpoint

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/closestpoint/query"
)

// Query kinds reported to loggers and metrics collectors.
const (
	KindClosest  = "closest"
	KindFurthest = "furthest"
)

// MetricsCollector defines an interface for collecting query metrics.
// Implement this interface to integrate with monitoring systems; package
// metrics/prometheus provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordQuery is called after each query. kind is KindClosest or
	// KindFurthest, results is the number of points returned and stats are
	// the engine counters of the query.
	RecordQuery(kind string, results int, stats query.Stats, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordQuery(string, int, query.Stats, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	QueryCount      atomic.Int64
	BruteForceCount atomic.Int64
	OptimizedCount  atomic.Int64
	ResultCount     atomic.Int64
	PointsEvaluated atomic.Int64
	CellsProcessed  atomic.Int64
	TotalNanos      atomic.Int64
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(_ string, results int, stats query.Stats, duration time.Duration) {
	b.QueryCount.Add(1)
	switch stats.Algorithm {
	case query.AlgorithmBruteForce:
		b.BruteForceCount.Add(1)
	case query.AlgorithmOptimized:
		b.OptimizedCount.Add(1)
	}
	b.ResultCount.Add(int64(results))
	b.PointsEvaluated.Add(int64(stats.PointsEvaluated))
	b.CellsProcessed.Add(int64(stats.CellsProcessed))
	b.TotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		QueryCount:      b.QueryCount.Load(),
		BruteForceCount: b.BruteForceCount.Load(),
		OptimizedCount:  b.OptimizedCount.Load(),
		ResultCount:     b.ResultCount.Load(),
		PointsEvaluated: b.PointsEvaluated.Load(),
		CellsProcessed:  b.CellsProcessed.Load(),
		AvgNanos:        b.getAvgNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgNanos() int64 {
	count := b.QueryCount.Load()
	if count == 0 {
		return 0
	}
	return b.TotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	QueryCount      int64
	BruteForceCount int64
	OptimizedCount  int64
	ResultCount     int64
	PointsEvaluated int64
	CellsProcessed  int64
	AvgNanos        int64
}
