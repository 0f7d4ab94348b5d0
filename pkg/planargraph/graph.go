// Package planargraph provides a planar graph of undirected segments stored
// as pairs of directed half-edges.
//
// Vertices are identified by exact coordinate value. Around every vertex the
// outgoing half-edges form a ring ordered counter-clockwise by angle, which
// [HalfEdge.ONext] walks. Following ONext from any outgoing half-edge
// therefore visits every segment incident to the vertex exactly once.
//
// The graph does not node its input: segments that cross without sharing a
// vertex are simply stored as given. Callers that need a proper planar
// arrangement node the input first (see package noding).
package planargraph

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// ErrUnsupportedGeometry is returned by [Graph.AddGeometry] for geometry
// types that carry no line work.
var ErrUnsupportedGeometry = errors.New("planargraph: unsupported geometry type")

// HalfEdge is one direction of an undirected segment.
type HalfEdge struct {
	orig  orb.Point
	angle float64
	sym   *HalfEdge
	onext *HalfEdge
}

// Orig returns the coordinate the half-edge starts at.
func (e *HalfEdge) Orig() orb.Point { return e.orig }

// Dest returns the coordinate the half-edge ends at.
func (e *HalfEdge) Dest() orb.Point { return e.sym.orig }

// Sym returns the opposite half-edge of the same segment.
func (e *HalfEdge) Sym() *HalfEdge { return e.sym }

// ONext returns the next half-edge counter-clockwise around the origin.
// For a vertex of degree one it returns e itself.
func (e *HalfEdge) ONext() *HalfEdge { return e.onext }

// Angle returns the direction of the half-edge in radians, in (-π, π].
func (e *HalfEdge) Angle() float64 { return e.angle }

// Length returns the Euclidean length of the segment.
func (e *HalfEdge) Length() float64 {
	d := e.Dest()
	return math.Hypot(d[0]-e.orig[0], d[1]-e.orig[1])
}

func (e *HalfEdge) String() string {
	return fmt.Sprintf("%v->%v", e.orig, e.Dest())
}

type vertex struct {
	pt   orb.Point
	ring []*HalfEdge // sorted by angle
}

// Graph is a planar graph keyed by coordinate. The zero value is not usable;
// create graphs with [New]. A Graph is not safe for concurrent mutation.
type Graph struct {
	vertices map[orb.Point]*vertex
	order    []*vertex
	edges    map[[2]orb.Point]*HalfEdge
	segments []*HalfEdge
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		vertices: make(map[orb.Point]*vertex),
		edges:    make(map[[2]orb.Point]*HalfEdge),
	}
}

// AddEdge adds the segment a-b and returns its half-edge directed from a to
// b. A zero-length segment is ignored and yields nil. Adding a segment that
// already exists, in either direction, returns the existing half-edge from a
// to b without modifying the graph.
func (g *Graph) AddEdge(a, b orb.Point) *HalfEdge {
	if a == b {
		return nil
	}
	if e, ok := g.edges[[2]orb.Point{a, b}]; ok {
		return e
	}

	e := &HalfEdge{orig: a, angle: math.Atan2(b[1]-a[1], b[0]-a[0])}
	s := &HalfEdge{orig: b, angle: math.Atan2(a[1]-b[1], a[0]-b[0])}
	e.sym, s.sym = s, e

	g.edges[[2]orb.Point{a, b}] = e
	g.edges[[2]orb.Point{b, a}] = s
	g.segments = append(g.segments, e)

	g.vertex(a).insert(e)
	g.vertex(b).insert(s)
	return e
}

// AddLineString adds every segment of ls.
func (g *Graph) AddLineString(ls orb.LineString) {
	for i := 0; i+1 < len(ls); i++ {
		g.AddEdge(ls[i], ls[i+1])
	}
}

// AddGeometry adds the line work of a LineString, MultiLineString or
// Collection. Other geometry types return [ErrUnsupportedGeometry].
func (g *Graph) AddGeometry(geom orb.Geometry) error {
	switch v := geom.(type) {
	case orb.LineString:
		g.AddLineString(v)
	case orb.MultiLineString:
		for _, ls := range v {
			g.AddLineString(ls)
		}
	case orb.Collection:
		for _, c := range v {
			if err := g.AddGeometry(c); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedGeometry, geom.GeoJSONType())
	}
	return nil
}

func (g *Graph) vertex(p orb.Point) *vertex {
	v, ok := g.vertices[p]
	if !ok {
		v = &vertex{pt: p}
		g.vertices[p] = v
		g.order = append(g.order, v)
	}
	return v
}

func (v *vertex) insert(e *HalfEdge) {
	i := sort.Search(len(v.ring), func(i int) bool {
		return v.ring[i].angle > e.angle
	})
	v.ring = append(v.ring, nil)
	copy(v.ring[i+1:], v.ring[i:])
	v.ring[i] = e

	for j, r := range v.ring {
		r.onext = v.ring[(j+1)%len(v.ring)]
	}
}

// VertexEdges returns one outgoing half-edge per vertex, in the order the
// vertices were first added. The returned half-edge is the one with the
// smallest angle.
func (g *Graph) VertexEdges() []*HalfEdge {
	out := make([]*HalfEdge, len(g.order))
	for i, v := range g.order {
		out[i] = v.ring[0]
	}
	return out
}

// Vertices returns the vertex coordinates in insertion order.
func (g *Graph) Vertices() []orb.Point {
	out := make([]orb.Point, len(g.order))
	for i, v := range g.order {
		out[i] = v.pt
	}
	return out
}

// Segments returns one half-edge per undirected segment, in insertion order.
func (g *Graph) Segments() []*HalfEdge {
	out := make([]*HalfEdge, len(g.segments))
	copy(out, g.segments)
	return out
}

// Edge returns the half-edge from a to b, or nil.
func (g *Graph) Edge(a, b orb.Point) *HalfEdge {
	return g.edges[[2]orb.Point{a, b}]
}

// HasVertex reports whether p is a vertex of the graph.
func (g *Graph) HasVertex(p orb.Point) bool {
	_, ok := g.vertices[p]
	return ok
}

// Degree returns the number of segments incident to p, 0 if p is not a
// vertex.
func (g *Graph) Degree(p orb.Point) int {
	v, ok := g.vertices[p]
	if !ok {
		return 0
	}
	return len(v.ring)
}

// VertexCount returns the number of distinct vertices.
func (g *Graph) VertexCount() int { return len(g.order) }

// EdgeCount returns the number of undirected segments.
func (g *Graph) EdgeCount() int { return len(g.segments) }

// Bound returns the envelope of all vertices.
func (g *Graph) Bound() orb.Bound {
	if len(g.order) == 0 {
		return orb.Bound{}
	}
	b := orb.Bound{Min: g.order[0].pt, Max: g.order[0].pt}
	for _, v := range g.order[1:] {
		b = b.Extend(v.pt)
	}
	return b
}
