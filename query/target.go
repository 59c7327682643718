package query

import (
	"github.com/golang/geo/s2"
	"github.com/hupe1980/closestpoint/chordangle"
)

// ShapeVisitor is called for each shape containing a target point. Returning
// false stops the visit.
type ShapeVisitor func(containing s2.Shape, targetPoint s2.Point) bool

// Target is the geometry a query measures distances from.
//
// The Update methods receive the current distance limit and return the new
// distance together with true only if it is strictly better than the limit.
// The point update must be exact unless the target accepted an allowance via
// SetMaxError. The edge and cell updates may return a bound instead, but it
// must never be worse than the true distance.
type Target[D any] interface {
	// CapBound returns a cap that bounds the target geometry. For furthest
	// point queries this bounds the antipodal geometry instead.
	CapBound() s2.Cap

	UpdateDistanceToPoint(p s2.Point, dist D) (D, bool)
	UpdateDistanceToEdge(a, b s2.Point, dist D) (D, bool)
	UpdateDistanceToCell(cell s2.Cell, dist D) (D, bool)

	// MaxBruteForceIndexSize returns the index size up to which a linear scan
	// is faster than the hierarchical search for this target.
	MaxBruteForceIndexSize() int

	// SetMaxError tells the target that distances up to maxErr worse than the
	// true distance are acceptable. It reports whether the target uses the
	// allowance; if so, cell distances it returns may be up to maxErr worse
	// than the true ones.
	SetMaxError(maxErr chordangle.ChordAngle) bool

	// VisitContainingShapes calls visitor for each shape of index containing
	// the target, stopping early if visitor returns false. It returns false
	// if the visit was stopped.
	VisitContainingShapes(index *s2.ShapeIndex, visitor ShapeVisitor) bool
}
