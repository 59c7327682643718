// Package chordangle provides ChordAngle, an angular distance represented as
// the squared length of the chord between two points on the unit sphere.
//
// ChordAngle trades the trigonometric calls of an angle representation for a
// few multiplications and a single square root. Comparisons are exact, and the
// arithmetic clamps instead of overflowing the valid range, so every value the
// package hands out is either in [0, 4] or one of the sentinels Negative or
// Infinity.
//
// # Usage
//
//	d := chordangle.FromDegrees(10)
//	bound := d.PlusError(d.MaxPointError())
//	inclusive := bound.Successor()
//	fmt.Println(d.Add(chordangle.FromDegrees(5)).Degrees()) // ~15
package chordangle
