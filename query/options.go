package query

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/hupe1980/closestpoint/chordangle"
	"github.com/hupe1980/closestpoint/distance"
)

// MaxMaxResults means "no limit" for Options.MaxResults.
const MaxMaxResults = math.MaxInt

// Options contains the per-query configuration.
//
// Use NewOptions to obtain the defaults; the zero value is not usable because
// MaxResults must be at least 1.
type Options[D distance.Distance[D]] struct {
	// MaxResults is the maximum number of results to return.
	MaxResults int

	// MaxDistance is an exclusive bound: only points strictly better than
	// MaxDistance are returned.
	MaxDistance D

	// MaxError allows results up to MaxError worse than the true best ones to
	// be returned in exchange for earlier termination.
	MaxError chordangle.ChordAngle

	// Region restricts results to points it contains. The region is borrowed;
	// it must not change while a query runs.
	Region s2.Region

	// UseBruteForce forces a linear scan of the index.
	UseBruteForce bool
}

// NewOptions returns options that return every point in the index: unbounded
// MaxResults, infinite MaxDistance, zero MaxError and no region.
func NewOptions[D distance.Distance[D]]() Options[D] {
	var d D
	return Options[D]{
		MaxResults:  MaxMaxResults,
		MaxDistance: d.Infinity(),
		MaxError:    chordangle.Zero,
	}
}
