package geom

import "github.com/paulmach/orb"

// IsSimple reports whether ls does not touch or cross itself.
//
// Adjacent segments may only share their common vertex. Non-adjacent
// segments may not meet at all, except the first and last segment of a
// closed line, which share the closing vertex.
func IsSimple(ls orb.LineString) bool {
	pts := RemoveRepeated(ls)
	n := len(pts) - 1
	if n < 1 {
		return true
	}
	closed := n > 2 && pts[0] == pts[n]

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			x := Intersect(pts[i], pts[i+1], pts[j], pts[j+1])
			if x.Kind == NoIntersection {
				continue
			}
			if x.Kind == CollinearIntersection {
				return false
			}
			switch {
			case j == i+1 && x.Points[0] == pts[j]:
				continue
			case closed && i == 0 && j == n-1 && x.Points[0] == pts[0]:
				continue
			}
			return false
		}
	}
	return true
}
