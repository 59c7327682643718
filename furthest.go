package closestpoint

import (
	"context"

	"github.com/golang/geo/s1"
	"github.com/hupe1980/closestpoint/chordangle"
	"github.com/hupe1980/closestpoint/distance"
	"github.com/hupe1980/closestpoint/index"
	"github.com/hupe1980/closestpoint/query"
)

type (
	// FurthestTarget is a geometry furthest point queries measure from.
	FurthestTarget = query.Target[distance.MaxDistance]

	// FurthestResult is a point returned by a furthest point query.
	FurthestResult[T any] = query.Result[distance.MaxDistance, T]
)

// FurthestOptions are the options of a FurthestPointQuery. The embedded
// MaxDistance field holds the minimum distance: only points further away are
// returned.
type FurthestOptions struct {
	query.Options[distance.MaxDistance]
}

// NewFurthestOptions returns options that match every point.
func NewFurthestOptions() FurthestOptions {
	return FurthestOptions{Options: query.NewOptions[distance.MaxDistance]()}
}

// SetMinDistance returns only points further than limit.
func (o *FurthestOptions) SetMinDistance(limit chordangle.ChordAngle) {
	o.MaxDistance = distance.MaxDistance(limit)
}

// SetMinDistanceAngle is SetMinDistance for an angle.
func (o *FurthestOptions) SetMinDistanceAngle(limit s1.Angle) {
	o.SetMinDistance(chordangle.FromAngle(limit))
}

// SetInclusiveMinDistance returns only points at distance limit or further.
func (o *FurthestOptions) SetInclusiveMinDistance(limit chordangle.ChordAngle) {
	o.SetMinDistance(limit.Predecessor())
}

// SetConservativeMinDistance is SetInclusiveMinDistance narrowed by the
// maximum error of an edge distance computation.
func (o *FurthestOptions) SetConservativeMinDistance(limit chordangle.ChordAngle) {
	o.SetMinDistance(limit.PlusError(-edgeDistanceMaxError(limit)).Predecessor())
}

// SetMaxErrorAngle sets MaxError from an angle.
func (o *FurthestOptions) SetMaxErrorAngle(maxErr s1.Angle) {
	o.MaxError = chordangle.FromAngle(maxErr)
}

// FurthestPointQuery finds the indexed points furthest from a target.
//
// A FurthestPointQuery is not safe for concurrent use.
type FurthestPointQuery[T any] struct {
	runner runner[distance.MaxDistance, T]
	opts   FurthestOptions
}

// NewFurthestPointQuery creates a query over idx with default options.
func NewFurthestPointQuery[T any](idx *index.PointIndex[T], optFns ...Option) *FurthestPointQuery[T] {
	o := applyOptions(optFns)
	return &FurthestPointQuery[T]{
		runner: newRunner[distance.MaxDistance](idx, KindFurthest, o),
		opts:   NewFurthestOptions(),
	}
}

// Options returns the options used by subsequent queries.
func (q *FurthestPointQuery[T]) Options() *FurthestOptions { return &q.opts }

// Index returns the queried index.
func (q *FurthestPointQuery[T]) Index() *index.PointIndex[T] { return q.runner.engine.Index() }

// ReInit makes modifications of the index visible to the query.
func (q *FurthestPointQuery[T]) ReInit() { q.runner.engine.ReInit() }

// Stats returns the counters of the most recent query.
func (q *FurthestPointQuery[T]) Stats() query.Stats { return q.runner.engine.Stats() }

// FindFurthestPoints returns the points matching the options, furthest first.
func (q *FurthestPointQuery[T]) FindFurthestPoints(tgt FurthestTarget) []FurthestResult[T] {
	return q.runner.findAll(context.Background(), tgt, q.opts.Options)
}

// FindFurthestPoint returns the furthest point matching the options,
// ignoring MaxResults. The result is empty if no point matches.
func (q *FurthestPointQuery[T]) FindFurthestPoint(tgt FurthestTarget) FurthestResult[T] {
	return q.runner.findOne(context.Background(), tgt, q.opts.Options)
}

// Distance returns the distance to the furthest point matching the options,
// or Negative if there is none.
func (q *FurthestPointQuery[T]) Distance(tgt FurthestTarget) chordangle.ChordAngle {
	r := q.FindFurthestPoint(tgt)
	if r.IsEmpty() {
		return chordangle.Negative
	}
	return r.Distance().ChordAngle()
}

// IsDistanceGreater reports whether some point matching the options is
// further than limit, stopping at the first such point.
func (q *FurthestPointQuery[T]) IsDistanceGreater(tgt FurthestTarget, limit chordangle.ChordAngle) bool {
	opts := q.opts.Options
	opts.MaxDistance = distance.MaxDistance(limit)
	opts.MaxError = chordangle.Straight
	return !q.runner.findOne(context.Background(), tgt, opts).IsEmpty()
}

// IsDistanceGreaterOrEqual is IsDistanceGreater with an inclusive limit.
func (q *FurthestPointQuery[T]) IsDistanceGreaterOrEqual(tgt FurthestTarget, limit chordangle.ChordAngle) bool {
	return q.IsDistanceGreater(tgt, limit.Predecessor())
}

// IsConservativeDistanceGreaterOrEqual is IsDistanceGreaterOrEqual with limit
// narrowed by the maximum error of an edge distance computation.
func (q *FurthestPointQuery[T]) IsConservativeDistanceGreaterOrEqual(tgt FurthestTarget, limit chordangle.ChordAngle) bool {
	return q.IsDistanceGreater(tgt, limit.PlusError(-edgeDistanceMaxError(limit)).Predecessor())
}
