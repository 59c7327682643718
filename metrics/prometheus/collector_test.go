package prometheus

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/closestpoint"
	"github.com/hupe1980/closestpoint/index"
	"github.com/hupe1980/closestpoint/query"
	"github.com/hupe1980/closestpoint/testutil"
)

func TestRecordQuery(t *testing.T) {
	reg := prom.NewRegistry()
	c, err := NewCollector(reg, "test")
	require.NoError(t, err)

	c.RecordQuery(closestpoint.KindClosest, 3, query.Stats{
		Algorithm:       query.AlgorithmOptimized,
		PointsEvaluated: 40,
		CellsProcessed:  5,
	}, 2*time.Millisecond)

	assert.Equal(t, 1.0, promtest.ToFloat64(c.queries.WithLabelValues("closest", "optimized")))
	assert.Equal(t, 3.0, promtest.ToFloat64(c.results.WithLabelValues("closest")))
	assert.Equal(t, 40.0, promtest.ToFloat64(c.pointsEvaluated.WithLabelValues("closest")))
	assert.Equal(t, 5.0, promtest.ToFloat64(c.cellsProcessed.WithLabelValues("closest")))
	assert.Equal(t, 1, promtest.CollectAndCount(c.latency))
}

func TestDuplicateRegistration(t *testing.T) {
	reg := prom.NewRegistry()
	_, err := NewCollector(reg, "test")
	require.NoError(t, err)

	_, err = NewCollector(reg, "test")
	assert.Error(t, err)
}

func TestQueryIntegration(t *testing.T) {
	reg := prom.NewRegistry()
	c, err := NewCollector(reg, "geo")
	require.NoError(t, err)

	idx := index.New[int]()
	for i, p := range testutil.ParsePoints("0:0, 1:0, 2:0") {
		idx.Add(p, i)
	}

	q := closestpoint.NewClosestPointQuery(idx, closestpoint.WithMetricsCollector(c))
	results := q.FindClosestPoints(closestpoint.NewPointTarget(testutil.LatLng(0, 0)))
	require.Len(t, results, 3)

	f := closestpoint.NewFurthestPointQuery(idx, closestpoint.WithMetricsCollector(c))
	f.FindFurthestPoint(closestpoint.NewFurthestPointTarget(testutil.LatLng(0, 0)))

	assert.Equal(t, 1.0, promtest.ToFloat64(c.queries.WithLabelValues("closest", "brute_force")))
	assert.Equal(t, 1.0, promtest.ToFloat64(c.queries.WithLabelValues("furthest", "brute_force")))
	assert.Equal(t, 3.0, promtest.ToFloat64(c.results.WithLabelValues("closest")))
	assert.Equal(t, 1.0, promtest.ToFloat64(c.results.WithLabelValues("furthest")))
}
