package render

import (
	"image/color"
	"math"

	"github.com/paulmach/orb"
)

// Layer is one geometry drawn with a single stroke style.
type Layer struct {
	Name     string
	Geometry orb.Geometry
	Color    color.RGBA
	Width    float64 // stroke width in output pixels
	Dashed   bool
	Vertices bool // mark every vertex with a dot
}

// Layer colours.
var (
	ColorInput    = color.RGBA{0x6b, 0x72, 0x80, 0xff}
	ColorRaw      = color.RGBA{0xf5, 0x9e, 0x0b, 0xff}
	ColorResolved = color.RGBA{0x25, 0x63, 0xeb, 0xff}
)

// InputLayer draws the input line as a thin dashed grey stroke.
func InputLayer(g orb.Geometry) Layer {
	return Layer{Name: "input", Geometry: g, Color: ColorInput, Width: 1.5, Dashed: true}
}

// RawLayer draws the unresolved offset curve.
func RawLayer(g orb.Geometry) Layer {
	return Layer{Name: "raw", Geometry: g, Color: ColorRaw, Width: 1.5}
}

// ResolvedLayer draws the resolved curve with its vertices.
func ResolvedLayer(g orb.Geometry) Layer {
	return Layer{Name: "resolved", Geometry: g, Color: ColorResolved, Width: 2.5, Vertices: true}
}

// Option configures SVG and PNG output.
type Option func(*options)

type options struct {
	size   float64
	margin float64
}

// WithSize sets the length of the longer side of the output in pixels
// (default 800).
func WithSize(px float64) Option { return func(o *options) { o.size = px } }

// WithMargin sets the margin around the drawing in pixels (default 20).
func WithMargin(px float64) Option { return func(o *options) { o.margin = px } }

func newOptions(opts []Option) options {
	o := options{size: 800, margin: 20}
	for _, opt := range opts {
		opt(&o)
	}
	if o.size <= 2*o.margin {
		o.size = 2*o.margin + 1
	}
	return o
}

// viewport maps world coordinates into output pixels.
type viewport struct {
	bound         orb.Bound
	scale         float64
	margin        float64
	width, height float64
}

func newViewport(layers []Layer, o options) viewport {
	var bound orb.Bound
	first := true
	for _, l := range layers {
		if l.Geometry == nil {
			continue
		}
		b := l.Geometry.Bound()
		if first {
			bound, first = b, false
		} else {
			bound = bound.Union(b)
		}
	}

	span := math.Max(bound.Right()-bound.Left(), bound.Top()-bound.Bottom())
	if span == 0 {
		span = 1
	}
	scale := (o.size - 2*o.margin) / span
	return viewport{
		bound:  bound,
		scale:  scale,
		margin: o.margin,
		width:  math.Ceil((bound.Right()-bound.Left())*scale + 2*o.margin),
		height: math.Ceil((bound.Top()-bound.Bottom())*scale + 2*o.margin),
	}
}

func (v viewport) project(p orb.Point) (x, y float64) {
	x = (p[0]-v.bound.Left())*v.scale + v.margin
	y = (v.bound.Top()-p[1])*v.scale + v.margin
	return x, y
}

// lines flattens a geometry into its polylines. Points and polygons are
// drawn by their vertices and rings.
func lines(g orb.Geometry) []orb.LineString {
	switch g := g.(type) {
	case orb.LineString:
		return []orb.LineString{g}
	case orb.MultiLineString:
		return g
	case orb.Ring:
		return []orb.LineString{orb.LineString(g)}
	case orb.Polygon:
		var out []orb.LineString
		for _, r := range g {
			out = append(out, orb.LineString(r))
		}
		return out
	case orb.Collection:
		var out []orb.LineString
		for _, c := range g {
			out = append(out, lines(c)...)
		}
		return out
	}
	return nil
}

func points(g orb.Geometry) []orb.Point {
	switch g := g.(type) {
	case orb.Point:
		return []orb.Point{g}
	case orb.MultiPoint:
		return g
	}
	var out []orb.Point
	for _, ls := range lines(g) {
		out = append(out, ls...)
	}
	return out
}
