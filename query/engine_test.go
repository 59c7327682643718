package query_test

import (
	"testing"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/hupe1980/closestpoint/chordangle"
	"github.com/hupe1980/closestpoint/distance"
	"github.com/hupe1980/closestpoint/index"
	"github.com/hupe1980/closestpoint/query"
	"github.com/hupe1980/closestpoint/target"
	"github.com/hupe1980/closestpoint/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildIndex(pts []s2.Point) *index.PointIndex[int] {
	idx := index.New[int]()
	for i, p := range pts {
		idx.Add(p, i)
	}
	return idx
}

func length2s[D distance.Distance[D]](results []query.Result[D, int]) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = r.Distance().ChordAngle().Length2()
	}
	return out
}

func ids[D distance.Distance[D]](results []query.Result[D, int]) []index.PointID {
	out := make([]index.PointID, len(results))
	for i, r := range results {
		out[i] = r.ID()
	}
	return out
}

// checkAgainstBruteForce runs opts with and without brute force and checks
// that both return the same points in the same order.
func checkAgainstBruteForce[D distance.Distance[D]](t *testing.T, idx *index.PointIndex[int], tgt query.Target[D], opts query.Options[D]) []query.Result[D, int] {
	t.Helper()

	e := query.New[D, int](idx)

	got := e.FindClosestPoints(tgt, opts)
	assert.Equal(t, query.AlgorithmOptimized, e.Stats().Algorithm)

	bruteOpts := opts
	bruteOpts.UseBruteForce = true
	want := e.FindClosestPoints(tgt, bruteOpts)
	assert.Equal(t, query.AlgorithmBruteForce, e.Stats().Algorithm)

	require.Equal(t, len(want), len(got))
	assert.InDeltaSlice(t, length2s(want), length2s(got), 1e-15)
	if opts.MaxError == chordangle.Zero {
		assert.Equal(t, ids(want), ids(got))
	}

	for i, r := range got {
		assert.True(t, r.Distance().Less(opts.MaxDistance), "result %d beyond the distance limit", i)
		if opts.Region != nil {
			assert.True(t, opts.Region.ContainsPoint(r.Point()), "result %d outside the region", i)
		}
		if i > 0 {
			assert.True(t, got[i-1].Less(r), "results out of order at %d", i)
		}
	}

	return got
}

func TestFourPoints(t *testing.T) {
	idx := buildIndex(testutil.ParsePoints("0:0, 1:0, 2:0, 3:0"))
	q := testutil.ParsePoint("4:0")

	t.Run("furthest", func(t *testing.T) {
		e := query.New[distance.MaxDistance, int](idx)
		opts := query.NewOptions[distance.MaxDistance]()
		opts.MaxResults = 1

		results := e.FindClosestPoints(target.NewMaxPointTarget(q), opts)
		require.Len(t, results, 1)
		assert.Equal(t, 0, results[0].Data())
		assert.InDelta(t, 4.0, results[0].Distance().ChordAngle().Degrees(), 1e-13)
	})

	t.Run("closest", func(t *testing.T) {
		e := query.New[distance.MinDistance, int](idx)
		opts := query.NewOptions[distance.MinDistance]()
		opts.MaxResults = 1

		r := e.FindClosestPoint(target.NewMinPointTarget(q), opts)
		require.False(t, r.IsEmpty())
		assert.Equal(t, 3, r.Data())
		assert.InDelta(t, 1.0, r.Distance().ChordAngle().Degrees(), 1e-13)
		assert.Equal(t, query.AlgorithmBruteForce, e.Stats().Algorithm)
	})

	t.Run("all ordered", func(t *testing.T) {
		e := query.New[distance.MinDistance, int](idx)
		results := e.FindClosestPoints(target.NewMinPointTarget(q), query.NewOptions[distance.MinDistance]())
		require.Len(t, results, 4)
		for i, r := range results {
			assert.Equal(t, 3-i, r.Data())
		}
	})
}

func TestCoincidentPoints(t *testing.T) {
	p := testutil.LatLng(12, 34)
	pts := make([]s2.Point, 10000)
	for i := range pts {
		pts[i] = p
	}
	idx := buildIndex(pts)

	e := query.New[distance.MinDistance, int](idx)
	results := e.FindClosestPoints(target.NewMinPointTarget(p), query.NewOptions[distance.MinDistance]())

	require.Len(t, results, 10000)
	assert.Equal(t, query.AlgorithmOptimized, e.Stats().Algorithm)

	seen := make(map[index.PointID]bool, len(results))
	for _, r := range results {
		assert.True(t, r.Distance().ChordAngle().IsZero())
		seen[r.ID()] = true
	}
	assert.Len(t, seen, 10000)

	t.Run("bounded", func(t *testing.T) {
		opts := query.NewOptions[distance.MinDistance]()
		opts.MaxResults = 7
		results := e.FindClosestPoints(target.NewMinPointTarget(p), opts)
		require.Len(t, results, 7)
		assert.Equal(t, []index.PointID{0, 1, 2, 3, 4, 5, 6}, ids(results))

		opts.MaxResults = 1
		assert.Equal(t, index.PointID(0), e.FindClosestPoint(target.NewMinPointTarget(p), opts).ID())
	})
}

func TestTiesResolveToLowestID(t *testing.T) {
	origin := testutil.LatLng(0, 0)
	// Exactly equidistant from origin, and from its antipode.
	tied := []s2.Point{
		testutil.LatLng(1, 0),
		testutil.LatLng(0, 1),
		testutil.LatLng(-1, 0),
		testutil.LatLng(0, -1),
	}
	far := testutil.NewRNG(99).PointsInCap(testutil.LatLng(60, 60), 10, 400)
	antipode := s2.Point{Vector: origin.Mul(-1)}

	for shift := range tied {
		// Rotating the insertion order decouples PointIDs from cell order.
		idx := index.New[int]()
		for i := range tied {
			idx.Add(tied[(i+shift)%len(tied)], i)
		}
		for i, p := range far {
			idx.Add(p, len(tied)+i)
		}

		for _, k := range []int{1, 2, 3} {
			want := make([]index.PointID, 0, k)
			for i := 0; i < k; i++ {
				want = append(want, index.PointID(i))
			}

			minOpts := query.NewOptions[distance.MinDistance]()
			minOpts.MaxResults = k
			got := checkAgainstBruteForce(t, idx, target.NewMinPointTarget(origin), minOpts)
			assert.Equal(t, want, ids(got), "closest shift=%d k=%d", shift, k)

			maxOpts := query.NewOptions[distance.MaxDistance]()
			maxOpts.MaxResults = k
			furthest := checkAgainstBruteForce(t, idx, target.NewMaxPointTarget(antipode), maxOpts)
			assert.Equal(t, want, ids(furthest), "furthest shift=%d k=%d", shift, k)
		}
	}
}

func TestEmptyIndex(t *testing.T) {
	idx := index.New[int]()
	e := query.New[distance.MinDistance, int](idx)

	results := e.FindClosestPoints(target.NewMinPointTarget(testutil.LatLng(0, 0)), query.NewOptions[distance.MinDistance]())
	assert.Empty(t, results)

	opts := query.NewOptions[distance.MinDistance]()
	opts.MaxResults = 1
	assert.True(t, e.FindClosestPoint(target.NewMinPointTarget(testutil.LatLng(0, 0)), opts).IsEmpty())
}

func TestStrictMaxDistance(t *testing.T) {
	pts := testutil.ParsePoints("0:0, 1:0, 2:0, 3:0")
	idx := buildIndex(pts)
	e := query.New[distance.MinDistance, int](idx)
	tgt := target.NewMinPointTarget(pts[0])

	opts := query.NewOptions[distance.MinDistance]()
	opts.MaxDistance = distance.MinDistance(chordangle.BetweenPoints(pts[0].Vector, pts[2].Vector))
	assert.Len(t, e.FindClosestPoints(tgt, opts), 2)

	opts.MaxDistance = distance.MinDistance(opts.MaxDistance.ChordAngle().Successor())
	assert.Len(t, e.FindClosestPoints(tgt, opts), 3)

	opts.MaxDistance = distance.MinDistance(chordangle.Zero)
	assert.Empty(t, e.FindClosestPoints(tgt, opts))
}

func TestRegion(t *testing.T) {
	idx := buildIndex(testutil.ParsePoints("0:0, 1:0, 2:0, 3:0"))
	e := query.New[distance.MinDistance, int](idx)

	opts := query.NewOptions[distance.MinDistance]()
	opts.Region = s2.CapFromCenterAngle(testutil.LatLng(2, 0), 0.5*s1.Degree)

	results := e.FindClosestPoints(target.NewMinPointTarget(testutil.LatLng(-1, 0)), opts)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Data())
}

func TestMatchesBruteForce(t *testing.T) {
	rng := testutil.NewRNG(4711)
	idx := buildIndex(rng.Points(2000))

	shapes := s2.NewShapeIndex()
	c := rng.Point()
	shapes.Add(s2.PolygonFromLoops([]*s2.Loop{s2.RegularLoop(c, 3*s1.Degree, 8)}))
	line := s2.Polyline(rng.Points(3))
	shapes.Add(&line)

	cu := s2.CellUnion{rng.CellID(6), rng.CellID(8), rng.CellID(10)}
	cell := s2.CellFromCellID(rng.CellID(9))
	p, a, b := rng.Point(), rng.Point(), rng.Point()

	minTargets := map[string]func() query.Target[distance.MinDistance]{
		"point":       func() query.Target[distance.MinDistance] { return target.NewMinPointTarget(p) },
		"edge":        func() query.Target[distance.MinDistance] { return target.NewMinEdgeTarget(a, b) },
		"cell":        func() query.Target[distance.MinDistance] { return target.NewMinCellTarget(cell) },
		"cell union":  func() query.Target[distance.MinDistance] { return target.NewMinCellUnionTarget(cu) },
		"shape index": func() query.Target[distance.MinDistance] { return target.NewMinShapeIndexTarget(shapes) },
	}
	maxTargets := map[string]func() query.Target[distance.MaxDistance]{
		"point":       func() query.Target[distance.MaxDistance] { return target.NewMaxPointTarget(p) },
		"edge":        func() query.Target[distance.MaxDistance] { return target.NewMaxEdgeTarget(a, b) },
		"cell":        func() query.Target[distance.MaxDistance] { return target.NewMaxCellTarget(cell) },
		"cell union":  func() query.Target[distance.MaxDistance] { return target.NewMaxCellUnionTarget(cu) },
		"shape index": func() query.Target[distance.MaxDistance] { return target.NewMaxShapeIndexTarget(shapes) },
	}

	region := rng.Cap(20, 40)

	minCases := []struct {
		name string
		opts func() query.Options[distance.MinDistance]
	}{
		{"k=1", func() query.Options[distance.MinDistance] {
			o := query.NewOptions[distance.MinDistance]()
			o.MaxResults = 1
			return o
		}},
		{"k=10", func() query.Options[distance.MinDistance] {
			o := query.NewOptions[distance.MinDistance]()
			o.MaxResults = 10
			return o
		}},
		{"within 10 degrees", func() query.Options[distance.MinDistance] {
			o := query.NewOptions[distance.MinDistance]()
			o.MaxDistance = distance.MinDistance(chordangle.FromDegrees(10))
			return o
		}},
		{"k=5 in region", func() query.Options[distance.MinDistance] {
			o := query.NewOptions[distance.MinDistance]()
			o.MaxResults = 5
			o.Region = region
			return o
		}},
	}

	for name, newTarget := range minTargets {
		for _, tc := range minCases {
			t.Run("min "+name+" "+tc.name, func(t *testing.T) {
				checkAgainstBruteForce(t, idx, newTarget(), tc.opts())
			})
		}
	}

	maxCases := []struct {
		name string
		opts func() query.Options[distance.MaxDistance]
	}{
		{"k=1", func() query.Options[distance.MaxDistance] {
			o := query.NewOptions[distance.MaxDistance]()
			o.MaxResults = 1
			return o
		}},
		{"k=10", func() query.Options[distance.MaxDistance] {
			o := query.NewOptions[distance.MaxDistance]()
			o.MaxResults = 10
			return o
		}},
		{"beyond 170 degrees", func() query.Options[distance.MaxDistance] {
			o := query.NewOptions[distance.MaxDistance]()
			o.MaxDistance = distance.MaxDistance(chordangle.FromDegrees(170))
			return o
		}},
	}

	for name, newTarget := range maxTargets {
		for _, tc := range maxCases {
			t.Run("max "+name+" "+tc.name, func(t *testing.T) {
				checkAgainstBruteForce(t, idx, newTarget(), tc.opts())
			})
		}
	}
}

func TestMaxErrorStaysWithinTolerance(t *testing.T) {
	rng := testutil.NewRNG(42)
	idx := buildIndex(rng.Points(3000))
	cu := s2.CellUnion{rng.CellID(5), rng.CellID(7)}
	maxErr := chordangle.FromDegrees(1)

	e := query.New[distance.MinDistance, int](idx)

	opts := query.NewOptions[distance.MinDistance]()
	opts.MaxResults = 8
	opts.MaxError = maxErr
	got := e.FindClosestPoints(target.NewMinCellUnionTarget(cu), opts)
	assert.Equal(t, query.AlgorithmOptimized, e.Stats().Algorithm)

	exact := query.NewOptions[distance.MinDistance]()
	exact.MaxResults = 8
	exact.UseBruteForce = true
	want := e.FindClosestPoints(target.NewMinCellUnionTarget(cu), exact)

	require.Len(t, got, len(want))
	for i := range got {
		assert.LessOrEqual(t,
			got[i].Distance().ChordAngle().Degrees(),
			want[i].Distance().ChordAngle().Degrees()+maxErr.Degrees()+1e-9,
		)
	}
}

func TestDeterminism(t *testing.T) {
	rng := testutil.NewRNG(7)
	idx := buildIndex(rng.Points(1000))
	e := query.New[distance.MinDistance, int](idx)
	tgt := target.NewMinPointTarget(rng.Point())

	opts := query.NewOptions[distance.MinDistance]()
	opts.MaxResults = 20

	first := e.FindClosestPoints(tgt, opts)
	second := e.FindClosestPoints(tgt, opts)

	require.Len(t, first, 20)
	assert.Equal(t, first, second)
}

func TestReInit(t *testing.T) {
	idx := buildIndex(testutil.ParsePoints("0:0, 10:0"))
	e := query.New[distance.MinDistance, int](idx)
	tgt := target.NewMinPointTarget(testutil.LatLng(5, 0.1))

	opts := query.NewOptions[distance.MinDistance]()
	opts.MaxResults = 1

	idx.Add(testutil.LatLng(5, 0), 99)
	assert.NotEqual(t, 99, e.FindClosestPoint(tgt, opts).Data(), "stale until ReInit")

	e.ReInit()
	r := e.FindClosestPoint(tgt, opts)
	assert.Equal(t, 99, r.Data())

	require.True(t, idx.Remove(r.ID()))
	e.ReInit()
	assert.NotEqual(t, 99, e.FindClosestPoint(tgt, opts).Data())
}

func TestOptimizedVisitsFewerPoints(t *testing.T) {
	rng := testutil.NewRNG(99)
	idx := buildIndex(rng.Points(5000))
	e := query.New[distance.MinDistance, int](idx)

	opts := query.NewOptions[distance.MinDistance]()
	opts.MaxResults = 1
	e.FindClosestPoint(target.NewMinPointTarget(rng.Point()), opts)

	stats := e.Stats()
	assert.Equal(t, query.AlgorithmOptimized, stats.Algorithm)
	assert.Less(t, stats.PointsEvaluated, 5000)
	assert.Positive(t, stats.InitialCells)
}

func TestPreconditions(t *testing.T) {
	idx := buildIndex(testutil.ParsePoints("0:0"))
	e := query.New[distance.MinDistance, int](idx)
	tgt := target.NewMinPointTarget(testutil.LatLng(0, 0))

	assert.Panics(t, func() {
		e.FindClosestPoint(tgt, query.NewOptions[distance.MinDistance]())
	})

	assert.Panics(t, func() {
		e.FindClosestPoints(tgt, query.Options[distance.MinDistance]{})
	})
}
