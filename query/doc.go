// Package query implements a branch-and-bound search for the points of an
// index.PointIndex that are closest to a target geometry.
//
// The Engine is generic over the distance type, so the same traversal finds
// the closest points (distance.MinDistance) or the furthest points
// (distance.MaxDistance). Targets supply the geometry: a bounding cap to seed
// the search and distance updates against points, edges and cells.
//
// # Algorithm
//
// Small indexes are scanned linearly. Larger ones are searched hierarchically:
// the engine keeps a priority queue of S2 cells keyed by a lower bound on the
// distance from the target to anything inside the cell, splits the best cell
// into its four children, and stops as soon as the best bound cannot beat the
// current distance limit. Cells holding only a few points are processed
// directly instead of being queued.
//
// # Concurrency
//
// An Engine is NOT thread-safe. It owns its scratch state and is intended to
// be used by one goroutine at a time. Any number of engines may query the same
// PointIndex concurrently.
package query
