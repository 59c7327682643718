package query

import (
	"github.com/golang/geo/s2"
	"github.com/hupe1980/closestpoint/distance"
	"github.com/hupe1980/closestpoint/index"
)

// Result is a point returned by a query together with its distance.
// An empty Result has an infinite distance and no point.
type Result[D distance.Distance[D], T any] struct {
	distance D
	entry    *index.Entry[T]
}

func emptyResult[D distance.Distance[D], T any]() Result[D, T] {
	var d D
	return Result[D, T]{distance: d.Infinity()}
}

// Distance returns the distance from the target to the point.
func (r Result[D, T]) Distance() D { return r.distance }

// IsEmpty reports whether r holds no point.
func (r Result[D, T]) IsEmpty() bool { return r.entry == nil }

// Entry returns the indexed entry, or nil for an empty Result.
func (r Result[D, T]) Entry() *index.Entry[T] { return r.entry }

// Point returns the result point. It must not be called on an empty Result.
func (r Result[D, T]) Point() s2.Point { return r.entry.Point() }

// Data returns the payload of the result point. It must not be called on an
// empty Result.
func (r Result[D, T]) Data() T { return r.entry.Data() }

// ID returns the PointID of the result point. It must not be called on an
// empty Result.
func (r Result[D, T]) ID() index.PointID { return r.entry.ID() }

// Less orders results by distance, then by PointID.
func (r Result[D, T]) Less(other Result[D, T]) bool {
	if r.distance.Less(other.distance) {
		return true
	}
	if other.distance.Less(r.distance) {
		return false
	}
	return r.id() < other.id()
}

// Equal reports whether both results refer to the same point at the same distance.
func (r Result[D, T]) Equal(other Result[D, T]) bool {
	return r.distance == other.distance && r.entry == other.entry
}

func (r Result[D, T]) id() index.PointID {
	if r.entry == nil {
		return 0
	}
	return r.entry.ID()
}

func compareResults[D distance.Distance[D], T any](a, b Result[D, T]) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}
