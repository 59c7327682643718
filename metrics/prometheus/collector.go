// Package prometheus exports closestpoint query metrics to Prometheus.
//
//	c, err := prometheus.NewCollector(registry, "geo")
//	q := closestpoint.NewClosestPointQuery(idx, closestpoint.WithMetricsCollector(c))
package prometheus

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/closestpoint"
	"github.com/hupe1980/closestpoint/query"
)

var _ closestpoint.MetricsCollector = (*Collector)(nil)

// Collector implements closestpoint.MetricsCollector with Prometheus metrics.
type Collector struct {
	latency         *prom.HistogramVec
	queries         *prom.CounterVec
	results         *prom.CounterVec
	pointsEvaluated *prom.CounterVec
	cellsProcessed  *prom.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
// A nil reg selects prometheus.DefaultRegisterer.
func NewCollector(reg prom.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	c := &Collector{
		latency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "closestpoint_query_duration_seconds",
			Help:      "Latency of closest and furthest point queries.",
			Buckets:   prom.ExponentialBuckets(0.00001, 2, 16), // 10µs to ~330ms
		}, []string{"kind", "algorithm"}),
		queries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "closestpoint_queries_total",
			Help:      "Number of queries run.",
		}, []string{"kind", "algorithm"}),
		results: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "closestpoint_results_total",
			Help:      "Number of points returned by queries.",
		}, []string{"kind"}),
		pointsEvaluated: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "closestpoint_points_evaluated_total",
			Help:      "Number of point distance computations.",
		}, []string{"kind"}),
		cellsProcessed: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "closestpoint_cells_processed_total",
			Help:      "Number of index cells whose points were scanned.",
		}, []string{"kind"}),
	}

	for _, m := range []prom.Collector{c.latency, c.queries, c.results, c.pointsEvaluated, c.cellsProcessed} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// RecordQuery implements closestpoint.MetricsCollector.
func (c *Collector) RecordQuery(kind string, results int, stats query.Stats, duration time.Duration) {
	algorithm := stats.Algorithm.String()
	c.latency.WithLabelValues(kind, algorithm).Observe(duration.Seconds())
	c.queries.WithLabelValues(kind, algorithm).Inc()
	c.results.WithLabelValues(kind).Add(float64(results))
	c.pointsEvaluated.WithLabelValues(kind).Add(float64(stats.PointsEvaluated))
	c.cellsProcessed.WithLabelValues(kind).Add(float64(stats.CellsProcessed))
}
