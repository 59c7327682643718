// Package testutil provides testing utilities for closestpoint.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random points on the sphere and for
// writing points compactly as "lat:lng" strings.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	p := rng.Point()                       // uniform on the sphere
//	pts := rng.PointsInCap(center, 1, 100) // within 1 degree of center
//
// # Text Format
//
//	pts := testutil.ParsePoints("0:0, 1:0, 2:0")
package testutil
