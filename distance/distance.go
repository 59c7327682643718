package distance

import (
	"fmt"

	"github.com/hupe1980/closestpoint/chordangle"
)

// Distance is the contract the query engine needs from a distance type.
//
// Zero, Infinity and Negative ignore their receiver so that generic code can
// call them on the zero value of D. Less defines the search order: the engine
// looks for the smallest values according to Less.
type Distance[D any] interface {
	comparable

	// Less reports whether the receiver is strictly better than other.
	Less(other D) bool
	// Zero returns the best possible distance.
	Zero() D
	// Infinity returns a distance worse than every real distance.
	Infinity() D
	// Negative returns a distance better than every real distance.
	Negative() D
	// Sub returns the receiver minus the tolerance delta, i.e. moved delta
	// towards Zero. The receiver must not be a sentinel.
	Sub(delta chordangle.ChordAngle) D
	// Successor returns the closest representable distance that is worse
	// than the receiver, turning an exclusive bound into an inclusive one.
	Successor() D
	// ChordAngleBound returns an upper bound on the angle between the
	// target's cap bound and any point at this distance.
	ChordAngleBound() chordangle.ChordAngle
	// ChordAngle returns the underlying angle.
	ChordAngle() chordangle.ChordAngle
}

// assertDistance only compiles if D satisfies Distance.
func assertDistance[D Distance[D]]() {}

// Metric identifies the distance semantics a query uses.
type Metric int

const (
	MetricMin Metric = iota
	MetricMax
)

func (m Metric) String() string {
	switch m {
	case MetricMin:
		return "Min"
	case MetricMax:
		return "Max"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}
