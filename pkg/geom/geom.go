// Package geom provides the 2D geometry primitives used by offsetcurve.
//
// Coordinates, lines and bounds are the types of [github.com/paulmach/orb]:
// an [orb.Point] is a comparable [2]float64, so it doubles as an exact map key
// for graph vertices. This package adds the handful of operations the offset
// pipeline needs on top of orb:
//
//   - Metrics: [Distance], [Length]
//   - Cleanup: [RemoveRepeated], [DistinctPoints], [Simplify]
//   - Predicates: [Orientation], [Intersect], [IsSimple]
//   - Codecs: [ParseLine], [FormatWKT], [MarshalGeoJSON]
//
// All comparisons are exact. No tolerance is applied to coordinate equality.
package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// Distance returns the Euclidean distance between a and b.
func Distance(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

// Length returns the summed segment length of ls.
func Length(ls orb.LineString) float64 {
	return planar.Length(ls)
}

// Equal2D reports whether a and b have identical ordinates.
func Equal2D(a, b orb.Point) bool {
	return a == b
}

// RemoveRepeated returns a copy of ls without consecutive duplicate points.
func RemoveRepeated(ls orb.LineString) orb.LineString {
	out := make(orb.LineString, 0, len(ls))
	for i, p := range ls {
		if i > 0 && p == ls[i-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// DistinctPoints counts the points of ls that differ from their predecessor.
func DistinctPoints(ls orb.LineString) int {
	return len(RemoveRepeated(ls))
}

// Simplify reduces ls with Douglas-Peucker at the given tolerance. The first
// and last points are always kept. A non-positive tolerance only removes
// repeated points. The input is not modified.
func Simplify(ls orb.LineString, tolerance float64) orb.LineString {
	clean := RemoveRepeated(ls)
	if tolerance <= 0 || len(clean) < 3 {
		return clean
	}
	out, ok := simplify.DouglasPeucker(tolerance).Simplify(clean).(orb.LineString)
	if !ok || len(out) < 2 {
		return clean
	}
	return out
}

// Reverse returns a reversed copy of ls.
func Reverse(ls orb.LineString) orb.LineString {
	out := ls.Clone()
	out.Reverse()
	return out
}
