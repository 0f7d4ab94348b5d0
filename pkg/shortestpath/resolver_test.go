package shortestpath

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/paulmach/orb"

	"github.com/matzehuels/offsetcurve/pkg/errors"
	"github.com/matzehuels/offsetcurve/pkg/geom"
	"github.com/matzehuels/offsetcurve/pkg/planargraph"
)

func TestSingleEdge(t *testing.T) {
	for _, s := range Strategies() {
		t.Run(s.String(), func(t *testing.T) {
			g := planargraph.New()
			a, b := orb.Point{1, 1}, orb.Point{4, 5}
			g.AddEdge(a, b)

			path, err := FindPath(g, a, b, s)
			if err != nil {
				t.Fatalf("FindPath() error = %v", err)
			}
			if len(path) != 2 || path[0] != a || path[1] != b {
				t.Errorf("path = %v, want [%v %v]", path, a, b)
			}
			if l := geom.Length(path); l != 5 {
				t.Errorf("length = %v, want 5", l)
			}
		})
	}
}

func TestShortcutPreferred(t *testing.T) {
	// square with one diagonal: the diagonal beats the two sides
	g := planargraph.New()
	g.AddLineString(orb.LineString{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}})
	g.AddEdge(orb.Point{0, 0}, orb.Point{10, 10})

	for _, s := range Strategies() {
		t.Run(s.String(), func(t *testing.T) {
			path, err := FindPath(g, orb.Point{0, 0}, orb.Point{10, 10}, s)
			if err != nil {
				t.Fatalf("FindPath() error = %v", err)
			}
			if len(path) != 2 {
				t.Errorf("path = %v, want the diagonal", path)
			}
		})
	}
}

func TestDisconnected(t *testing.T) {
	g := planargraph.New()
	g.AddLineString(orb.LineString{{0, 0}, {1, 0}, {1, 1}})
	g.AddLineString(orb.LineString{{5, 5}, {6, 5}})

	for _, s := range Strategies() {
		t.Run(s.String(), func(t *testing.T) {
			r, err := NewResolver(g, s)
			if err != nil {
				t.Fatalf("NewResolver() error = %v", err)
			}
			path, err := r.Resolve(orb.Point{0, 0}, orb.Point{6, 5})
			if !errors.Is(err, errors.ErrCodeUnreachableTarget) {
				t.Fatalf("error = %v, want UNREACHABLE_TARGET", err)
			}
			if path != nil {
				t.Errorf("path = %v, want nil", path)
			}
			if st := r.Stats(); st.Committed != 3 {
				t.Errorf("committed = %d, want the 3 vertices of the start component", st.Committed)
			}
			if state, _ := r.State(orb.Point{5, 5}); state != Unvisited {
				t.Errorf("vertex in other component is %v, want unvisited", state)
			}
			if d, _ := r.Distance(orb.Point{5, 5}); !math.IsInf(d, 1) {
				t.Errorf("unreached distance = %v, want +Inf", d)
			}
		})
	}
}

func TestCoordinateNotFound(t *testing.T) {
	g := planargraph.New()
	g.AddEdge(orb.Point{0, 0}, orb.Point{1, 0})

	tests := []struct {
		name       string
		start, end orb.Point
	}{
		{"start", orb.Point{9, 9}, orb.Point{1, 0}},
		{"end", orb.Point{0, 0}, orb.Point{9, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindPath(g, tt.start, tt.end, PriorityQueue)
			if !errors.Is(err, errors.ErrCodeCoordinateNotFound) {
				t.Errorf("error = %v, want COORDINATE_NOT_FOUND", err)
			}
		})
	}
}

func TestStartIsEnd(t *testing.T) {
	g := planargraph.New()
	g.AddEdge(orb.Point{0, 0}, orb.Point{1, 0})
	for _, s := range Strategies() {
		path, err := FindPath(g, orb.Point{0, 0}, orb.Point{0, 0}, s)
		if err != nil || len(path) != 1 {
			t.Errorf("%v: path = %v, err = %v, want the single start point", s, path, err)
		}
	}
}

func TestResolverSingleUse(t *testing.T) {
	g := planargraph.New()
	g.AddEdge(orb.Point{0, 0}, orb.Point{1, 0})

	r, err := NewResolver(g, LinearScan)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Resolve(orb.Point{0, 0}, orb.Point{1, 0}); err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}
	if _, err := r.Resolve(orb.Point{0, 0}, orb.Point{1, 0}); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("second Resolve() error = %v, want INTERNAL_ERROR", err)
	}
}

func TestUnsupportedStrategy(t *testing.T) {
	_, err := NewResolver(planargraph.New(), Strategy(42))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want UNSUPPORTED", err)
	}
}

// shortRing reports one more incident segment per vertex than the rings
// enumerate.
type shortRing struct{ *planargraph.Graph }

func (g shortRing) Degree(v orb.Point) int { return g.Graph.Degree(v) + 1 }

func TestRingValidation(t *testing.T) {
	g := planargraph.New()
	g.AddLineString(orb.LineString{{0, 0}, {1, 0}, {1, 1}})

	_, err := NewResolver(shortRing{g}, PriorityQueue)
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("error = %v, want INTERNAL_ERROR", err)
	}
}

func TestStateMachine(t *testing.T) {
	// a path 0-1-2-3 plus a far branch off vertex 1
	g := planargraph.New()
	g.AddLineString(orb.LineString{{0, 0}, {1, 0}, {2, 0}, {3, 0}})
	g.AddEdge(orb.Point{1, 0}, orb.Point{1, 100})

	r, err := NewResolver(g, PriorityQueue)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range g.Vertices() {
		if st, _ := r.State(p); st != Unvisited {
			t.Fatalf("before search %v is %v", p, st)
		}
	}
	if _, err := r.Resolve(orb.Point{0, 0}, orb.Point{2, 0}); err != nil {
		t.Fatal(err)
	}

	want := map[orb.Point]State{
		{0, 0}:   Committed,
		{1, 0}:   Committed,
		{2, 0}:   Committed,
		{1, 100}: Tentative,
		{3, 0}:   Unvisited,
	}
	for p, w := range want {
		if st, _ := r.State(p); st != w {
			t.Errorf("state of %v = %v, want %v", p, st, w)
		}
	}
	if _, ok := r.State(orb.Point{7, 7}); ok {
		t.Error("State of unknown point should report false")
	}
}

func TestStats(t *testing.T) {
	g := planargraph.New()
	g.AddLineString(orb.LineString{{0, 0}, {3, 4}, {6, 8}})

	r, _ := NewResolver(g, LinearScan)
	if _, err := r.Resolve(orb.Point{0, 0}, orb.Point{6, 8}); err != nil {
		t.Fatal(err)
	}
	st := r.Stats()
	if st.Vertices != 3 || st.Edges != 2 || st.Committed != 3 || st.PathVertices != 3 || st.Length != 10 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestDeterministic(t *testing.T) {
	// many equal-length paths across a unit grid
	rng := rand.New(rand.NewPCG(7, 11))
	g, start, end := randomGrid(rng, 64, 1, 0)

	for _, s := range Strategies() {
		first, err := FindPath(g, start, end, s)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 5; i++ {
			again, _ := FindPath(g, start, end, s)
			if !again.Equal(first) {
				t.Fatalf("%v: run %d returned %v, first run %v", s, i, again, first)
			}
		}
	}
}

func TestStrategiesAgree(t *testing.T) {
	rng := rand.New(rand.NewPCG(2024, 1))
	sizes := []int{5, 6, 9, 12, 20, 37, 64, 100, 150, 256, 333, 500}

	for _, n := range sizes {
		for trial := 0; trial < 4; trial++ {
			t.Run(fmt.Sprintf("n=%d/%d", n, trial), func(t *testing.T) {
				g, start, end := randomGrid(rng, n, 0.75, 0.3)

				lin, linErr := FindPath(g, start, end, LinearScan)
				pq, pqErr := FindPath(g, start, end, PriorityQueue)
				if errors.GetCode(linErr) != errors.GetCode(pqErr) {
					t.Fatalf("errors differ: linear %v, priority queue %v", linErr, pqErr)
				}
				if linErr != nil {
					if !errors.Is(linErr, errors.ErrCodeUnreachableTarget) {
						t.Fatalf("unexpected error %v", linErr)
					}
					return
				}

				ll, pl := geom.Length(lin), geom.Length(pq)
				if math.Abs(ll-pl) > 1e-9*math.Max(1, ll) {
					t.Errorf("lengths differ: linear %v, priority queue %v", ll, pl)
				}
				if lin[0] != start || lin[len(lin)-1] != end || pq[0] != start || pq[len(pq)-1] != end {
					t.Errorf("paths do not run from start to end")
				}
				assertSimplePath(t, lin)
				assertSimplePath(t, pq)
			})
		}
	}
}

func TestOptimalAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(99, 5))

	for trial := 0; trial < 40; trial++ {
		n := 5 + rng.IntN(8)
		g, start, end := randomGrid(rng, n, 0.8, 0.3)

		best := bruteForce(g, start, end)
		for _, s := range Strategies() {
			path, err := FindPath(g, start, end, s)
			if math.IsInf(best, 1) {
				if !errors.Is(err, errors.ErrCodeUnreachableTarget) {
					t.Errorf("trial %d %v: error = %v, want UNREACHABLE_TARGET", trial, s, err)
				}
				continue
			}
			if err != nil {
				t.Fatalf("trial %d %v: error = %v", trial, s, err)
			}
			if l := geom.Length(path); l > best+1e-9 {
				t.Errorf("trial %d %v: length %v exceeds brute force optimum %v", trial, s, l, best)
			}
		}
	}
}

// randomGrid builds a planar graph over n jittered grid points. Each grid
// edge, and one diagonal per cell, is kept with probability keep. Start is
// the first vertex, end the last.
func randomGrid(rng *rand.Rand, n int, keep, jitter float64) (*planargraph.Graph, orb.Point, orb.Point) {
	w := int(math.Ceil(math.Sqrt(float64(n))))
	pts := make([]orb.Point, n)
	for i := range pts {
		pts[i] = orb.Point{
			float64(i%w) + (rng.Float64()-0.5)*jitter,
			float64(i/w) + (rng.Float64()-0.5)*jitter,
		}
	}

	g := planargraph.New()
	add := func(i, j int) {
		if j < n && rng.Float64() < keep {
			g.AddEdge(pts[i], pts[j])
		}
	}
	for i := 0; i < n; i++ {
		lastCol := i%w == w-1
		if !lastCol {
			add(i, i+1)
			add(i, i+w+1)
		}
		add(i, i+w)
	}
	// isolated points still need to be vertices for the search
	if !g.HasVertex(pts[0]) {
		g.AddEdge(pts[0], orb.Point{-1, -1})
	}
	if !g.HasVertex(pts[n-1]) {
		g.AddEdge(pts[n-1], orb.Point{float64(w) + 1, -1})
	}
	return g, pts[0], pts[n-1]
}

func bruteForce(g *planargraph.Graph, start, end orb.Point) float64 {
	reps := map[orb.Point]*planargraph.HalfEdge{}
	for _, e := range g.VertexEdges() {
		reps[e.Orig()] = e
	}

	best := math.Inf(1)
	onPath := map[orb.Point]bool{start: true}
	var walk func(p orb.Point, length float64)
	walk = func(p orb.Point, length float64) {
		if p == end {
			best = math.Min(best, length)
			return
		}
		first := reps[p]
		e := first
		for {
			q := e.Dest()
			if !onPath[q] {
				onPath[q] = true
				walk(q, length+e.Length())
				onPath[q] = false
			}
			e = e.ONext()
			if e == first {
				break
			}
		}
	}
	walk(start, 0)
	return best
}

func assertSimplePath(t *testing.T, path orb.LineString) {
	t.Helper()
	seen := make(map[orb.Point]bool, len(path))
	for _, p := range path {
		if seen[p] {
			t.Fatalf("path visits %v twice", p)
		}
		seen[p] = true
	}
}
