package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// Orientation returns +1 if c lies to the left of the directed line a→b,
// -1 if it lies to the right and 0 if the three points are collinear.
func Orientation(a, b, c orb.Point) int {
	det := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
	switch {
	case det > 0:
		return 1
	case det < 0:
		return -1
	default:
		return 0
	}
}

// IntersectionKind classifies the result of [Intersect].
type IntersectionKind int

const (
	// NoIntersection means the segments are disjoint.
	NoIntersection IntersectionKind = iota
	// PointIntersection means the segments meet in exactly one point.
	PointIntersection
	// CollinearIntersection means the segments overlap along a sub-segment.
	CollinearIntersection
)

// Intersection is the result of intersecting two segments.
type Intersection struct {
	Kind IntersectionKind

	// Points holds the intersection points: one for a point intersection,
	// the two ends of the shared sub-segment for a collinear overlap.
	Points []orb.Point

	// Proper is true when the segments cross at a point interior to both.
	// Only proper intersections produce computed (non-input) coordinates.
	Proper bool
}

// Intersect computes the intersection of segments p1-p2 and q1-q2.
//
// Whenever an intersection point coincides with a segment endpoint, the
// endpoint coordinate itself is returned, so callers that key vertices by
// exact coordinate never see near-duplicates of existing vertices.
func Intersect(p1, p2, q1, q2 orb.Point) Intersection {
	if !envelopesOverlap(p1, p2, q1, q2) {
		return Intersection{}
	}

	pq1 := Orientation(p1, p2, q1)
	pq2 := Orientation(p1, p2, q2)
	if pq1*pq2 > 0 {
		return Intersection{}
	}
	qp1 := Orientation(q1, q2, p1)
	qp2 := Orientation(q1, q2, p2)
	if qp1*qp2 > 0 {
		return Intersection{}
	}

	if pq1 == 0 && pq2 == 0 && qp1 == 0 && qp2 == 0 {
		return collinearIntersection(p1, p2, q1, q2)
	}

	if pq1 == 0 || pq2 == 0 || qp1 == 0 || qp2 == 0 {
		return Intersection{Kind: PointIntersection, Points: []orb.Point{endpointIntersection(p1, p2, q1, q2, pq1, pq2, qp1, qp2)}}
	}

	return Intersection{
		Kind:   PointIntersection,
		Points: []orb.Point{properIntersection(p1, p2, q1, q2)},
		Proper: true,
	}
}

func endpointIntersection(p1, p2, q1, q2 orb.Point, pq1, pq2, qp1, qp2 int) orb.Point {
	// shared endpoints first so both segments agree on the exact value
	switch {
	case p1 == q1 || p1 == q2:
		return p1
	case p2 == q1 || p2 == q2:
		return p2
	case pq1 == 0:
		return q1
	case pq2 == 0:
		return q2
	case qp1 == 0:
		return p1
	default:
		return p2
	}
}

func properIntersection(p1, p2, q1, q2 orb.Point) orb.Point {
	rx, ry := p2[0]-p1[0], p2[1]-p1[1]
	sx, sy := q2[0]-q1[0], q2[1]-q1[1]
	denom := rx*sy - ry*sx
	t := ((q1[0]-p1[0])*sy - (q1[1]-p1[1])*sx) / denom
	pt := orb.Point{p1[0] + t*rx, p1[1] + t*ry}

	// rounding can push the point outside the segments; clamp it into the
	// shared envelope
	minX := math.Max(math.Min(p1[0], p2[0]), math.Min(q1[0], q2[0]))
	maxX := math.Min(math.Max(p1[0], p2[0]), math.Max(q1[0], q2[0]))
	minY := math.Max(math.Min(p1[1], p2[1]), math.Min(q1[1], q2[1]))
	maxY := math.Min(math.Max(p1[1], p2[1]), math.Max(q1[1], q2[1]))
	pt[0] = math.Min(math.Max(pt[0], minX), maxX)
	pt[1] = math.Min(math.Max(pt[1], minY), maxY)
	return pt
}

func collinearIntersection(p1, p2, q1, q2 orb.Point) Intersection {
	var pts []orb.Point
	add := func(p orb.Point) {
		for _, q := range pts {
			if q == p {
				return
			}
		}
		pts = append(pts, p)
	}
	if inEnvelope(q1, q2, p1) {
		add(p1)
	}
	if inEnvelope(q1, q2, p2) {
		add(p2)
	}
	if inEnvelope(p1, p2, q1) {
		add(q1)
	}
	if inEnvelope(p1, p2, q2) {
		add(q2)
	}

	switch len(pts) {
	case 0:
		return Intersection{}
	case 1:
		return Intersection{Kind: PointIntersection, Points: pts}
	default:
		return Intersection{Kind: CollinearIntersection, Points: pts[:2]}
	}
}

func inEnvelope(a, b, p orb.Point) bool {
	return p[0] >= math.Min(a[0], b[0]) && p[0] <= math.Max(a[0], b[0]) &&
		p[1] >= math.Min(a[1], b[1]) && p[1] <= math.Max(a[1], b[1])
}

func envelopesOverlap(p1, p2, q1, q2 orb.Point) bool {
	return math.Min(p1[0], p2[0]) <= math.Max(q1[0], q2[0]) &&
		math.Min(q1[0], q2[0]) <= math.Max(p1[0], p2[0]) &&
		math.Min(p1[1], p2[1]) <= math.Max(q1[1], q2[1]) &&
		math.Min(q1[1], q2[1]) <= math.Max(p1[1], p2[1])
}

// SegmentBound returns the envelope of segment a-b.
func SegmentBound(a, b orb.Point) orb.Bound {
	return orb.Bound{
		Min: orb.Point{math.Min(a[0], b[0]), math.Min(a[1], b[1])},
		Max: orb.Point{math.Max(a[0], b[0]), math.Max(a[1], b[1])},
	}
}
