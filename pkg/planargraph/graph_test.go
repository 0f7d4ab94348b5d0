package planargraph

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestAddEdge(t *testing.T) {
	g := New()
	a, b := orb.Point{0, 0}, orb.Point{3, 4}

	e := g.AddEdge(a, b)
	if e == nil {
		t.Fatal("AddEdge returned nil")
	}
	if e.Orig() != a || e.Dest() != b {
		t.Errorf("edge = %v, want %v->%v", e, a, b)
	}
	if e.Sym().Sym() != e || e.Sym().Orig() != b {
		t.Errorf("sym is not the opposite half-edge: %v", e.Sym())
	}
	if e.Length() != 5 {
		t.Errorf("Length() = %v, want 5", e.Length())
	}
	if e.ONext() != e {
		t.Error("a degree-one vertex ring should point to itself")
	}

	if g.AddEdge(a, a) != nil {
		t.Error("zero-length edge should be ignored")
	}
	if got := g.AddEdge(a, b); got != e {
		t.Error("duplicate edge should return the existing half-edge")
	}
	if got := g.AddEdge(b, a); got != e.Sym() {
		t.Error("reversed duplicate should return the existing opposite half-edge")
	}
	if g.EdgeCount() != 1 || g.VertexCount() != 2 {
		t.Errorf("counts = %d edges, %d vertices, want 1, 2", g.EdgeCount(), g.VertexCount())
	}
}

func TestRingOrder(t *testing.T) {
	g := New()
	c := orb.Point{0, 0}
	// insert out of angular order
	g.AddEdge(c, orb.Point{0, -1})
	g.AddEdge(c, orb.Point{1, 0})
	g.AddEdge(c, orb.Point{-1, 0})
	g.AddEdge(c, orb.Point{0, 1})

	if g.Degree(c) != 4 {
		t.Fatalf("Degree = %d, want 4", g.Degree(c))
	}

	start := g.Edge(c, orb.Point{1, 0})
	want := []orb.Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	e := start
	for i, w := range want {
		if e.Dest() != w {
			t.Errorf("ring[%d] dest = %v, want %v", i, e.Dest(), w)
		}
		e = e.ONext()
	}
	if e != start {
		t.Error("ring does not close after degree steps")
	}
}

func TestRingEnumeratesAllIncidentEdges(t *testing.T) {
	g := New()
	g.AddLineString(orb.LineString{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}})
	g.AddLineString(orb.LineString{{0, 0}, {10, 10}})
	g.AddLineString(orb.LineString{{0, 10}, {10, 0}})

	for _, start := range g.VertexEdges() {
		seen := map[orb.Point]bool{}
		e := start
		for {
			if e.Orig() != start.Orig() {
				t.Fatalf("ring of %v contains %v", start.Orig(), e)
			}
			seen[e.Dest()] = true
			e = e.ONext()
			if e == start {
				break
			}
		}
		if len(seen) != g.Degree(start.Orig()) {
			t.Errorf("vertex %v: ring visits %d neighbours, degree %d", start.Orig(), len(seen), g.Degree(start.Orig()))
		}
	}
}

func TestVertexEdgesOrder(t *testing.T) {
	g := New()
	g.AddLineString(orb.LineString{{5, 5}, {1, 1}, {3, 0}})

	want := []orb.Point{{5, 5}, {1, 1}, {3, 0}}
	edges := g.VertexEdges()
	if len(edges) != len(want) {
		t.Fatalf("got %d vertex edges, want %d", len(edges), len(want))
	}
	for i, w := range want {
		if edges[i].Orig() != w {
			t.Errorf("VertexEdges()[%d] origin = %v, want %v", i, edges[i].Orig(), w)
		}
	}
	if got := g.Vertices(); got[2] != want[2] {
		t.Errorf("Vertices() = %v", got)
	}
}

func TestAddGeometry(t *testing.T) {
	g := New()
	mls := orb.MultiLineString{
		{{0, 0}, {1, 0}},
		{{1, 0}, {1, 1}},
	}
	if err := g.AddGeometry(orb.Collection{mls, orb.LineString{{1, 1}, {0, 0}}}); err != nil {
		t.Fatalf("AddGeometry() error = %v", err)
	}
	if g.EdgeCount() != 3 || g.VertexCount() != 3 {
		t.Errorf("counts = %d edges, %d vertices, want 3, 3", g.EdgeCount(), g.VertexCount())
	}

	err := g.AddGeometry(orb.Point{1, 2})
	if !errors.Is(err, ErrUnsupportedGeometry) {
		t.Errorf("AddGeometry(Point) error = %v, want ErrUnsupportedGeometry", err)
	}
}

func TestGraphQueries(t *testing.T) {
	g := New()
	g.AddLineString(orb.LineString{{-2, 1}, {4, 3}})

	if !g.HasVertex(orb.Point{4, 3}) || g.HasVertex(orb.Point{0, 0}) {
		t.Error("HasVertex mismatch")
	}
	if g.Degree(orb.Point{9, 9}) != 0 {
		t.Error("unknown vertex should have degree 0")
	}
	b := g.Bound()
	if b.Min != (orb.Point{-2, 1}) || b.Max != (orb.Point{4, 3}) {
		t.Errorf("Bound() = %v", b)
	}
	if segs := g.Segments(); len(segs) != 1 || segs[0].Orig() != (orb.Point{-2, 1}) {
		t.Errorf("Segments() = %v", segs)
	}
	if a := g.Edge(orb.Point{4, 3}, orb.Point{-2, 1}).Angle(); math.Abs(a-math.Atan2(-2, -6)) > 1e-12 {
		t.Errorf("Angle() = %v", a)
	}
}
