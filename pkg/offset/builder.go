package offset

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/matzehuels/offsetcurve/pkg/geom"
)

// Builder generates raw offset curves with a fixed set of parameters.
// A Builder holds no per-curve state and is safe for concurrent use.
type Builder struct {
	params Params
}

// NewBuilder returns a Builder for p. Parameters are used as given; call
// [Params.Validate] first when they come from user input.
func NewBuilder(p Params) *Builder {
	return &Builder{params: p}
}

// Params returns the parameters the builder was created with.
func (b *Builder) Params() Params {
	return b.params
}

// Curve returns the raw offset of line at the signed distance. Positive
// distances offset to the left of the line direction, negative ones to the
// right. The result keeps the direction of the input. Consecutive repeated
// input points are ignored. A zero distance or a line with fewer than two
// distinct points yields nil.
func (b *Builder) Curve(line orb.LineString, distance float64) orb.LineString {
	pts := geom.RemoveRepeated(line)
	if len(pts) < 2 || distance == 0 {
		return nil
	}
	if distance < 0 {
		return geom.Reverse(b.left(geom.Reverse(pts), -distance))
	}
	return b.left(pts, distance)
}

type segment struct {
	p0, p1 orb.Point
	dir    vec
	normal vec // unit left normal
}

func (b *Builder) left(pts orb.LineString, d float64) orb.LineString {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i+1 < len(pts); i++ {
		dir := sub(pts[i+1], pts[i])
		n := dir.perp().unit()
		segs = append(segs, segment{
			p0:     n.scale(d).add(pts[i]),
			p1:     n.scale(d).add(pts[i+1]),
			dir:    dir,
			normal: n,
		})
	}

	out := make(orb.LineString, 0, len(pts)*2)
	out = append(out, segs[0].p0)
	for i := 1; i < len(segs); i++ {
		out = b.join(out, pts[i], segs[i-1], segs[i], d)
	}
	out = append(out, segs[len(segs)-1].p1)
	return geom.RemoveRepeated(out)
}

// join appends the points connecting prev to next around vertex v.
func (b *Builder) join(out orb.LineString, v orb.Point, prev, next segment, d float64) orb.LineString {
	cross := prev.dir.cross(next.dir)
	dot := prev.dir.dot(next.dir)
	scale := prev.dir.length() * next.dir.length()

	if math.Abs(cross) <= collinearEpsilon*scale {
		if dot > 0 {
			return append(out, prev.p1)
		}
		// full reversal: the outside is the whole half circle
		return b.outside(out, v, prev, next, d, -math.Pi)
	}

	// a left turn puts the left offset on the inside
	if cross > 0 {
		return inside(out, v, prev, next)
	}
	return b.outside(out, v, prev, next, d, math.Atan2(cross, dot))
}

func inside(out orb.LineString, v orb.Point, prev, next segment) orb.LineString {
	x := geom.Intersect(prev.p0, prev.p1, next.p0, next.p1)
	if x.Kind == geom.PointIntersection {
		return append(out, x.Points[0])
	}
	return append(out, prev.p1, v, next.p0)
}

// outside appends an outside-turn join. sweep is the signed turn angle,
// negative for the clockwise turns that reach this point.
func (b *Builder) outside(out orb.LineString, v orb.Point, prev, next segment, d, sweep float64) orb.LineString {
	switch b.params.JoinStyle {
	case JoinMitre:
		bis := prev.normal.add2(next.normal)
		bl := bis.length()
		if bl > 0 && 2/bl <= b.params.MitreLimit {
			return append(out, bis.scale(2*d/(bl*bl)).add(v))
		}
		return append(out, prev.p1, next.p0)
	case JoinBevel:
		return append(out, prev.p1, next.p0)
	default:
		return b.fillet(out, v, prev, next, d, sweep)
	}
}

func (b *Builder) fillet(out orb.LineString, v orb.Point, prev, next segment, d, sweep float64) orb.LineString {
	out = append(out, prev.p1)

	step := math.Pi / 2 / float64(b.params.QuadrantSegments)
	n := int(math.Ceil(math.Abs(sweep)/step - 1e-9))
	start := math.Atan2(prev.normal.y, prev.normal.x)
	for k := 1; k < n; k++ {
		a := start + sweep*float64(k)/float64(n)
		out = append(out, orb.Point{v[0] + d*math.Cos(a), v[1] + d*math.Sin(a)})
	}
	return append(out, next.p0)
}

const collinearEpsilon = 1e-12

type vec struct{ x, y float64 }

func sub(a, b orb.Point) vec { return vec{a[0] - b[0], a[1] - b[1]} }

func (v vec) add(p orb.Point) orb.Point { return orb.Point{p[0] + v.x, p[1] + v.y} }
func (v vec) add2(w vec) vec           { return vec{v.x + w.x, v.y + w.y} }
func (v vec) scale(s float64) vec      { return vec{v.x * s, v.y * s} }
func (v vec) dot(w vec) float64        { return v.x*w.x + v.y*w.y }
func (v vec) cross(w vec) float64      { return v.x*w.y - v.y*w.x }
func (v vec) length() float64          { return math.Hypot(v.x, v.y) }
func (v vec) perp() vec                { return vec{-v.y, v.x} }

func (v vec) unit() vec {
	l := v.length()
	if l == 0 {
		return vec{}
	}
	return vec{v.x / l, v.y / l}
}
