package closestpoint

import (
	"context"
	"math"

	"github.com/golang/geo/s1"
	"github.com/hupe1980/closestpoint/chordangle"
	"github.com/hupe1980/closestpoint/distance"
	"github.com/hupe1980/closestpoint/index"
	"github.com/hupe1980/closestpoint/query"
)

const dblEpsilon = 2.220446049250313e-16

type (
	// ClosestTarget is a geometry closest point queries measure from.
	ClosestTarget = query.Target[distance.MinDistance]

	// ClosestResult is a point returned by a closest point query.
	ClosestResult[T any] = query.Result[distance.MinDistance, T]
)

// ClosestOptions are the options of a ClosestPointQuery.
type ClosestOptions struct {
	query.Options[distance.MinDistance]
}

// NewClosestOptions returns options that match every point.
func NewClosestOptions() ClosestOptions {
	return ClosestOptions{Options: query.NewOptions[distance.MinDistance]()}
}

// SetMaxDistance returns only points closer than limit.
func (o *ClosestOptions) SetMaxDistance(limit chordangle.ChordAngle) {
	o.MaxDistance = distance.MinDistance(limit)
}

// SetMaxDistanceAngle is SetMaxDistance for an angle.
func (o *ClosestOptions) SetMaxDistanceAngle(limit s1.Angle) {
	o.SetMaxDistance(chordangle.FromAngle(limit))
}

// SetInclusiveMaxDistance returns only points at distance limit or closer.
func (o *ClosestOptions) SetInclusiveMaxDistance(limit chordangle.ChordAngle) {
	o.SetMaxDistance(limit.Successor())
}

// SetConservativeMaxDistance is SetInclusiveMaxDistance widened by the
// maximum error of an edge distance computation, so that no point whose
// distance might be limit or less is missed.
func (o *ClosestOptions) SetConservativeMaxDistance(limit chordangle.ChordAngle) {
	o.SetMaxDistance(limit.PlusError(edgeDistanceMaxError(limit)).Successor())
}

// SetMaxErrorAngle sets MaxError from an angle.
func (o *ClosestOptions) SetMaxErrorAngle(maxErr s1.Angle) {
	o.MaxError = chordangle.FromAngle(maxErr)
}

// ClosestPointQuery finds the indexed points closest to a target.
//
// A ClosestPointQuery is not safe for concurrent use.
type ClosestPointQuery[T any] struct {
	runner runner[distance.MinDistance, T]
	opts   ClosestOptions
}

// NewClosestPointQuery creates a query over idx with default options.
func NewClosestPointQuery[T any](idx *index.PointIndex[T], optFns ...Option) *ClosestPointQuery[T] {
	o := applyOptions(optFns)
	return &ClosestPointQuery[T]{
		runner: newRunner[distance.MinDistance](idx, KindClosest, o),
		opts:   NewClosestOptions(),
	}
}

// Options returns the options used by subsequent queries.
func (q *ClosestPointQuery[T]) Options() *ClosestOptions { return &q.opts }

// Index returns the queried index.
func (q *ClosestPointQuery[T]) Index() *index.PointIndex[T] { return q.runner.engine.Index() }

// ReInit makes modifications of the index visible to the query.
func (q *ClosestPointQuery[T]) ReInit() { q.runner.engine.ReInit() }

// Stats returns the counters of the most recent query.
func (q *ClosestPointQuery[T]) Stats() query.Stats { return q.runner.engine.Stats() }

// FindClosestPoints returns the points matching the options, closest first.
func (q *ClosestPointQuery[T]) FindClosestPoints(tgt ClosestTarget) []ClosestResult[T] {
	return q.runner.findAll(context.Background(), tgt, q.opts.Options)
}

// FindClosestPoint returns the closest point matching the options, ignoring
// MaxResults. The result is empty if no point matches.
func (q *ClosestPointQuery[T]) FindClosestPoint(tgt ClosestTarget) ClosestResult[T] {
	return q.runner.findOne(context.Background(), tgt, q.opts.Options)
}

// Distance returns the distance to the closest point matching the options,
// or Infinity if there is none.
func (q *ClosestPointQuery[T]) Distance(tgt ClosestTarget) chordangle.ChordAngle {
	r := q.FindClosestPoint(tgt)
	if r.IsEmpty() {
		return chordangle.Infinity()
	}
	return r.Distance().ChordAngle()
}

// IsDistanceLess reports whether some point matching the options is closer
// than limit. It stops at the first such point, so it is usually much faster
// than Distance.
func (q *ClosestPointQuery[T]) IsDistanceLess(tgt ClosestTarget, limit chordangle.ChordAngle) bool {
	opts := q.opts.Options
	opts.MaxDistance = distance.MinDistance(limit)
	// A MaxError of Straight makes any qualifying point final.
	opts.MaxError = chordangle.Straight
	return !q.runner.findOne(context.Background(), tgt, opts).IsEmpty()
}

// IsDistanceLessOrEqual is IsDistanceLess with an inclusive limit.
func (q *ClosestPointQuery[T]) IsDistanceLessOrEqual(tgt ClosestTarget, limit chordangle.ChordAngle) bool {
	return q.IsDistanceLess(tgt, limit.Successor())
}

// IsConservativeDistanceLessOrEqual is IsDistanceLessOrEqual with limit
// widened by the maximum error of an edge distance computation.
func (q *ClosestPointQuery[T]) IsConservativeDistanceLessOrEqual(tgt ClosestTarget, limit chordangle.ChordAngle) bool {
	return q.IsDistanceLess(tgt, limit.PlusError(edgeDistanceMaxError(limit)).Successor())
}

// edgeDistanceMaxError returns the maximum error of a distance computed by
// s2.UpdateMinDistance, in squared chord length units.
func edgeDistanceMaxError(dist chordangle.ChordAngle) float64 {
	return math.Max(interiorDistanceMaxError(dist), dist.MaxPointError())
}

// interiorDistanceMaxError bounds the error when the closest point lies in
// the interior of the edge.
func interiorDistanceMaxError(dist chordangle.ChordAngle) float64 {
	// The interior case is only used for distances below Right.
	if dist >= chordangle.Right {
		return 0
	}

	b := math.Min(1, 0.5*dist.Length2())
	a := math.Sqrt(b * (2 - b))
	return ((2.5+2*math.Sqrt(3)+8.5*a)*a +
		(2+2*math.Sqrt(3)/3+6.5*(1-b))*b +
		(23+16/math.Sqrt(3))*dblEpsilon) * dblEpsilon
}
