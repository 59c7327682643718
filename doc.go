// Package closestpoint finds the points of a spherical point index that are
// closest to (or furthest from) a query geometry.
//
// Points are stored in an index.PointIndex, ordered along the S2 cell
// hierarchy. Queries traverse that hierarchy best-first and prune every cell
// that provably cannot contain a better point, so a k-nearest query touches
// only a small fraction of a large index.
//
// # Quick Start
//
//	idx := index.New[string]()
//	idx.Add(s2.PointFromLatLng(s2.LatLngFromDegrees(48.1, 11.6)), "munich")
//	idx.Add(s2.PointFromLatLng(s2.LatLngFromDegrees(52.5, 13.4)), "berlin")
//
//	q := closestpoint.NewClosestPointQuery(idx)
//	q.Options().MaxResults = 1
//	q.Options().SetMaxDistanceAngle(5 * s1.Degree)
//
//	target := closestpoint.NewPointTarget(s2.PointFromLatLng(s2.LatLngFromDegrees(50.1, 8.7)))
//	for _, r := range q.FindClosestPoints(target) {
//	    fmt.Println(r.Data(), r.Distance())
//	}
//
// # Targets
//
// A target is the geometry distances are measured from: a point, an edge, a
// cell, a cell union or a whole s2.ShapeIndex. Closest point queries take the
// Min targets of package target, furthest point queries the Max targets.
//
// # Predicates
//
// IsDistanceLess and its variants answer "is any point within d?" and stop on
// the first qualifying point:
//
//	if q.IsDistanceLess(target, chordangle.FromDegrees(1)) {
//	    // ...
//	}
//
// # Concurrency
//
// PointIndex is safe for concurrent use. A query object is not: it owns
// scratch state reused across calls. Use one query per goroutine, or
// FindClosestPointsBatch to run many targets in parallel.
package closestpoint
