// Package index provides PointIndex, an in-memory collection of points on the
// sphere kept in S2 cell-ID order.
//
// Each point carries an opaque payload and a PointID assigned at insertion.
// The PointID is the point's storage identity: it distinguishes coincident
// points with equal payloads and breaks distance ties in query results.
//
// # Mutation
//
// Add and Remove are buffered and merged into the sorted storage the next time
// an Iterator is requested. Iterators read an immutable snapshot, so a query
// that holds an Iterator keeps seeing the data as of its creation. Engines
// that cache derived data must re-initialize after the index is mutated.
//
// # Concurrency
//
// All methods are safe for concurrent use. Iterators are not; each goroutine
// needs its own.
package index
