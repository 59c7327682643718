package distance

import "github.com/hupe1980/closestpoint/chordangle"

// Compile time check to ensure MaxDistance satisfies the Distance constraint.
var _ = assertDistance[MaxDistance]

// MaxDistance is a ChordAngle ordered from far to near, which turns a closest
// point search into a furthest point search.
type MaxDistance chordangle.ChordAngle

// Less reports whether d is further away than other.
func (d MaxDistance) Less(other MaxDistance) bool { return d > other }

// Zero returns a straight angle, the furthest possible distance.
func (MaxDistance) Zero() MaxDistance { return MaxDistance(chordangle.Straight) }

// Infinity returns the Negative sentinel, which every real distance beats.
func (MaxDistance) Infinity() MaxDistance { return MaxDistance(chordangle.Negative) }

// Negative returns the Infinity sentinel.
func (MaxDistance) Negative() MaxDistance { return MaxDistance(chordangle.Infinity()) }

// Sub moves d towards Straight by delta.
func (d MaxDistance) Sub(delta chordangle.ChordAngle) MaxDistance {
	return MaxDistance(chordangle.ChordAngle(d).Add(delta))
}

// Successor returns the next smaller angle, which is the next worse
// maximum distance.
func (d MaxDistance) Successor() MaxDistance {
	return MaxDistance(chordangle.ChordAngle(d).Predecessor())
}

// ChordAngleBound returns the supplement of d. A point at distance at least d
// from the target lies within this angle of the target's antipodal cap.
func (d MaxDistance) ChordAngleBound() chordangle.ChordAngle {
	return chordangle.Straight.Sub(chordangle.ChordAngle(d))
}

// ChordAngle returns d as a ChordAngle.
func (d MaxDistance) ChordAngle() chordangle.ChordAngle { return chordangle.ChordAngle(d) }

// UpdateMax sets d to other if other is further away and reports whether it did.
func (d *MaxDistance) UpdateMax(other MaxDistance) bool {
	if other > *d {
		*d = other
		return true
	}
	return false
}

func (d MaxDistance) String() string { return chordangle.ChordAngle(d).String() }
