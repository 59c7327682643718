package chordangle

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// ChordAngle is the squared chord length between two points on the unit sphere.
//
// The zero value is a zero angle. Values are immutable; every operation returns
// a new ChordAngle.
type ChordAngle float64

const (
	// MaxLength2 is the squared chord length of a straight angle.
	MaxLength2 = 4.0

	// Negative is smaller than every valid ChordAngle.
	Negative ChordAngle = -1
	// Zero is a zero angle.
	Zero ChordAngle = 0
	// Right is a 90 degree angle.
	Right ChordAngle = 2
	// Straight is a 180 degree angle, the maximum finite ChordAngle.
	Straight ChordAngle = 4

	// dblEpsilon is the C DBL_EPSILON.
	dblEpsilon = 2.220446049250313e-16
)

// Infinity returns a ChordAngle larger than every finite ChordAngle.
func Infinity() ChordAngle {
	return ChordAngle(math.Inf(1))
}

// FromAngle converts an s1.Angle to a ChordAngle.
//
// Negative angles map to Negative and an infinite angle maps to Infinity.
// Angles larger than 180 degrees are clamped to Straight.
func FromAngle(a s1.Angle) ChordAngle {
	if a < 0 {
		return Negative
	}
	if a == s1.InfAngle() {
		return Infinity()
	}
	l := 2 * math.Sin(0.5*math.Min(math.Pi, a.Radians()))
	c := ChordAngle(l * l)
	c.mustBeValid()
	return c
}

// FromRadians returns the ChordAngle for the given angle in radians.
func FromRadians(r float64) ChordAngle { return FromAngle(s1.Angle(r) * s1.Radian) }

// FromDegrees returns the ChordAngle for the given angle in degrees.
func FromDegrees(d float64) ChordAngle { return FromAngle(s1.Angle(d) * s1.Degree) }

// FromE5 returns the ChordAngle for an angle in units of 1e-5 degrees.
func FromE5(e5 int32) ChordAngle { return FromAngle(s1.Angle(e5) * s1.E5) }

// FromE6 returns the ChordAngle for an angle in units of 1e-6 degrees.
func FromE6(e6 int32) ChordAngle { return FromAngle(s1.Angle(e6) * s1.E6) }

// FromE7 returns the ChordAngle for an angle in units of 1e-7 degrees.
func FromE7(e7 int32) ChordAngle { return FromAngle(s1.Angle(e7) * s1.E7) }

// FromLength2 returns a ChordAngle from a squared chord length, clamped to
// Straight. Callers must not pass a negative length other than Negative.
func FromLength2(length2 float64) ChordAngle {
	return ChordAngle(math.Min(MaxLength2, length2))
}

// BetweenPoints returns the ChordAngle between two unit vectors.
func BetweenPoints(x, y r3.Vector) ChordAngle {
	return ChordAngle(math.Min(MaxLength2, x.Sub(y).Norm2()))
}

// FastUpperBoundFrom returns a ChordAngle that is guaranteed to be at least as
// large as a, using the arc length as an upper bound on the chord length.
// It avoids the trigonometric call of FromAngle.
func FastUpperBoundFrom(a s1.Angle) ChordAngle {
	r := a.Radians()
	return FromLength2(r * r)
}

// FromS1 converts a golang/geo chord angle.
func FromS1(c s1.ChordAngle) ChordAngle { return ChordAngle(c) }

// ToS1 converts c to a golang/geo chord angle.
func (c ChordAngle) ToS1() s1.ChordAngle { return s1.ChordAngle(c) }

// Length2 returns the squared chord length.
func (c ChordAngle) Length2() float64 { return float64(c) }

// Angle converts c to an s1.Angle. Negative maps to -1 radians and Infinity
// maps to s1.InfAngle().
func (c ChordAngle) Angle() s1.Angle {
	if c < 0 {
		return -1 * s1.Radian
	}
	if c.IsInfinity() {
		return s1.InfAngle()
	}
	return s1.Angle(2*math.Asin(0.5*math.Sqrt(float64(c)))) * s1.Radian
}

// Degrees returns c in degrees.
func (c ChordAngle) Degrees() float64 { return c.Angle().Degrees() }

// IsZero reports whether c is a zero angle.
func (c ChordAngle) IsZero() bool { return c == 0 }

// IsNegative reports whether c is the Negative sentinel.
func (c ChordAngle) IsNegative() bool { return c < 0 }

// IsInfinity reports whether c is the Infinity sentinel.
func (c ChordAngle) IsInfinity() bool { return math.IsInf(float64(c), 1) }

// IsSpecial reports whether c is Negative or Infinity.
func (c ChordAngle) IsSpecial() bool { return c.IsNegative() || c.IsInfinity() }

// IsValid reports whether c is in [0, 4] or a sentinel.
func (c ChordAngle) IsValid() bool {
	return (c >= 0 && c <= MaxLength2) || c.IsSpecial()
}

func (c ChordAngle) mustBeValid() {
	if !c.IsValid() {
		panic(fmt.Sprintf("chordangle: invalid length2 %v", float64(c)))
	}
}

// Successor returns the smallest representable ChordAngle larger than c.
// The successor of Straight or more is Infinity, and the successor of
// Negative is Zero.
func (c ChordAngle) Successor() ChordAngle {
	if c >= MaxLength2 {
		return Infinity()
	}
	if c < 0 {
		return Zero
	}
	return ChordAngle(math.Nextafter(float64(c), 10.0))
}

// Predecessor returns the largest representable ChordAngle smaller than c.
// The predecessor of Zero or less is Negative, and the predecessor of
// Infinity is Straight.
func (c ChordAngle) Predecessor() ChordAngle {
	if c <= 0 {
		return Negative
	}
	if c > MaxLength2 {
		return Straight
	}
	return ChordAngle(math.Nextafter(float64(c), -10.0))
}

// PlusError returns c inflated (or deflated, for a negative e) by e squared
// chord length units, clamped to [Zero, Straight]. Sentinels are returned
// unchanged.
func (c ChordAngle) PlusError(e float64) ChordAngle {
	if c.IsSpecial() {
		return c
	}
	return FromLength2(math.Max(0, math.Min(MaxLength2, float64(c)+e)))
}

// MaxPointError returns the maximum error in c when it was constructed by
// BetweenPoints from two unit-length vectors.
func (c ChordAngle) MaxPointError() float64 {
	// 2.5ε relative error for the squared distance, 2ε relative error for
	// the input lengths, and 16ε² absolute error from Normalize.
	return 4.5*dblEpsilon*float64(c) + 16*dblEpsilon*dblEpsilon
}

// MaxAngleError returns the maximum error in c when it was constructed by
// FromAngle.
func (c ChordAngle) MaxAngleError() float64 {
	return dblEpsilon * float64(c)
}

// Add returns the ChordAngle of the angle sum c+other, clamped to Straight.
// Both operands must be non-special.
func (c ChordAngle) Add(other ChordAngle) ChordAngle {
	if c.IsSpecial() || other.IsSpecial() {
		panic(fmt.Sprintf("chordangle: Add with special operand (%v, %v)", float64(c), float64(other)))
	}
	if other == 0 {
		return c
	}
	if c+other >= MaxLength2 {
		return Straight
	}
	// With chord lengths a = 2 sin(A) and b = 2 sin(B), the sum chord is
	// 2 sin(A+B) = 2 (sin A cos B + sin B cos A), and cos X = sqrt(1 - sin² X).
	x := float64(c) * (1 - 0.25*float64(other))
	y := float64(other) * (1 - 0.25*float64(c))
	return ChordAngle(math.Min(MaxLength2, x+y+2*math.Sqrt(x*y)))
}

// Sub returns the ChordAngle of the angle difference c-other, clamped to Zero.
// Both operands must be non-special.
func (c ChordAngle) Sub(other ChordAngle) ChordAngle {
	if c.IsSpecial() || other.IsSpecial() {
		panic(fmt.Sprintf("chordangle: Sub with special operand (%v, %v)", float64(c), float64(other)))
	}
	if other == 0 {
		return c
	}
	if c <= other {
		return Zero
	}
	x := float64(c) * (1 - 0.25*float64(other))
	y := float64(other) * (1 - 0.25*float64(c))
	return ChordAngle(math.Max(0, x+y-2*math.Sqrt(x*y)))
}

// String returns c in degrees.
func (c ChordAngle) String() string {
	switch {
	case c.IsNegative():
		return "Negative"
	case c.IsInfinity():
		return "Infinity"
	}
	return fmt.Sprintf("%.7f", c.Degrees())
}

// Sin2 returns the square of the sine of c, computed from the chord length.
func Sin2(c ChordAngle) float64 {
	// sin²(A) = 4·sin²(A/2)·cos²(A/2) with sin(A/2) = chord/2.
	return float64(c) * (1 - 0.25*float64(c))
}

// Sin returns the sine of c.
func Sin(c ChordAngle) float64 { return math.Sqrt(Sin2(c)) }

// Cos returns the cosine of c.
func Cos(c ChordAngle) float64 {
	// cos(A) = 1 - 2·sin²(A/2).
	return 1 - 0.5*float64(c)
}

// Tan returns the tangent of c.
func Tan(c ChordAngle) float64 { return Sin(c) / Cos(c) }
