package distance

import "github.com/hupe1980/closestpoint/chordangle"

// Compile time check to ensure MinDistance satisfies the Distance constraint.
var _ = assertDistance[MinDistance]

// MinDistance is a ChordAngle ordered from near to far.
type MinDistance chordangle.ChordAngle

// Less reports whether d is closer than other.
func (d MinDistance) Less(other MinDistance) bool { return d < other }

// Zero returns a zero distance.
func (MinDistance) Zero() MinDistance { return MinDistance(chordangle.Zero) }

// Infinity returns an infinite distance.
func (MinDistance) Infinity() MinDistance { return MinDistance(chordangle.Infinity()) }

// Negative returns a negative distance.
func (MinDistance) Negative() MinDistance { return MinDistance(chordangle.Negative) }

// Sub returns d reduced by delta, clamped at zero.
func (d MinDistance) Sub(delta chordangle.ChordAngle) MinDistance {
	return MinDistance(chordangle.ChordAngle(d).Sub(delta))
}

// Successor returns the next larger distance.
func (d MinDistance) Successor() MinDistance {
	return MinDistance(chordangle.ChordAngle(d).Successor())
}

// ChordAngleBound returns d inflated by its construction error.
func (d MinDistance) ChordAngleBound() chordangle.ChordAngle {
	c := chordangle.ChordAngle(d)
	return c.PlusError(c.MaxAngleError())
}

// ChordAngle returns d as a ChordAngle.
func (d MinDistance) ChordAngle() chordangle.ChordAngle { return chordangle.ChordAngle(d) }

// UpdateMin sets d to other if other is closer and reports whether it did.
func (d *MinDistance) UpdateMin(other MinDistance) bool {
	if other < *d {
		*d = other
		return true
	}
	return false
}

func (d MinDistance) String() string { return chordangle.ChordAngle(d).String() }
