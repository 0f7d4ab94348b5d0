// Package noding splits lines at their intersections.
//
// [Node] takes a set of lines and returns fragments that meet only at shared
// vertices: every segment is cut at every point where it touches or crosses
// another segment, including segments of the same line. The same coordinate
// value is inserted into both segments of a crossing, so the fragments can be
// joined into a planar graph by exact coordinate equality.
//
// Candidate segment pairs are found with an R-tree over segment envelopes.
package noding

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"

	"github.com/matzehuels/offsetcurve/pkg/geom"
)

type segment struct {
	a, b   orb.Point
	splits []orb.Point
}

// Node returns the noded fragments of lines. Each input segment yields one
// fragment per piece between consecutive split points, in segment order.
// Zero-length segments and fragments are dropped.
func Node(lines []orb.LineString) []orb.LineString {
	var segs []*segment
	for _, ls := range lines {
		for i := 0; i+1 < len(ls); i++ {
			if ls[i] == ls[i+1] {
				continue
			}
			segs = append(segs, &segment{a: ls[i], b: ls[i+1]})
		}
	}

	var index rtree.RTreeG[int]
	for i, s := range segs {
		bb := geom.SegmentBound(s.a, s.b)
		index.Insert(bb.Min, bb.Max, i)
	}

	for i, s := range segs {
		bb := geom.SegmentBound(s.a, s.b)
		index.Search(bb.Min, bb.Max, func(_, _ [2]float64, j int) bool {
			if j <= i {
				return true
			}
			o := segs[j]
			x := geom.Intersect(s.a, s.b, o.a, o.b)
			for _, p := range x.Points {
				s.addSplit(p)
				o.addSplit(p)
			}
			return true
		})
	}

	out := make([]orb.LineString, 0, len(segs))
	for _, s := range segs {
		out = append(out, s.fragments()...)
	}
	return out
}

func (s *segment) addSplit(p orb.Point) {
	if p == s.a || p == s.b {
		return
	}
	s.splits = append(s.splits, p)
}

func (s *segment) fragments() []orb.LineString {
	if len(s.splits) == 0 {
		return []orb.LineString{{s.a, s.b}}
	}

	dx, dy := s.b[0]-s.a[0], s.b[1]-s.a[1]
	param := func(p orb.Point) float64 {
		return (p[0]-s.a[0])*dx + (p[1]-s.a[1])*dy
	}
	pts := append([]orb.Point{s.a}, s.splits...)
	sort.SliceStable(pts[1:], func(i, j int) bool {
		return param(pts[i+1]) < param(pts[j+1])
	})
	pts = append(pts, s.b)

	frags := make([]orb.LineString, 0, len(pts)-1)
	for i := 0; i+1 < len(pts); i++ {
		if pts[i] == pts[i+1] {
			continue
		}
		frags = append(frags, orb.LineString{pts[i], pts[i+1]})
	}
	return frags
}

// ToGeometry collects fragments into a single MultiLineString.
func ToGeometry(fragments []orb.LineString) orb.MultiLineString {
	mls := make(orb.MultiLineString, len(fragments))
	copy(mls, fragments)
	return mls
}
