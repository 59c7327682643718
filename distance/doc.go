// Package distance provides the distance types the closest-point engine is
// generic over.
//
// # Supported Metrics
//
//   - MinDistance: ordinary angular distance; the engine finds the closest points.
//   - MaxDistance: the same ChordAngle with the order reversed; the engine
//     finds the furthest points.
//
// Both metrics use chordangle.ChordAngle as their tolerance (Delta) type.
//
// # Usage
//
//	var d distance.MinDistance
//	limit := d.Infinity()
//	if cand.Less(limit) {
//	    limit = cand.Sub(maxError)
//	}
package distance
