package shortestpath

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/matzehuels/offsetcurve/pkg/errors"
	"github.com/matzehuels/offsetcurve/pkg/planargraph"
)

// Graph is the view of a planar graph the resolver needs: one outgoing
// half-edge per vertex, and the number of segments incident to each vertex.
// [planargraph.Graph] implements it.
type Graph interface {
	VertexEdges() []*planargraph.HalfEdge
	Degree(v orb.Point) int
}

// State is the search state of a vertex.
type State int

const (
	// Unvisited vertices have not been reached by any relaxation.
	Unvisited State = iota
	// Tentative vertices carry a finite distance that may still improve.
	Tentative
	// Committed vertices have a final distance.
	Committed
)

func (s State) String() string {
	switch s {
	case Unvisited:
		return "unvisited"
	case Tentative:
		return "tentative"
	case Committed:
		return "committed"
	default:
		return "unknown"
	}
}

const noPredecessor = -1

// arena holds the per-search vertex records as parallel slices indexed by
// vertex number.
type arena struct {
	coords      []orb.Point
	distance    []float64
	predecessor []int
	visited     []bool
	relaxed     []bool
	adj         [][]int
	index       map[orb.Point]int
	edges       int
}

func newArena(g Graph) (*arena, error) {
	reps := g.VertexEdges()
	n := len(reps)
	a := &arena{
		coords:      make([]orb.Point, n),
		distance:    make([]float64, n),
		predecessor: make([]int, n),
		visited:     make([]bool, n),
		relaxed:     make([]bool, n),
		adj:         make([][]int, n),
		index:       make(map[orb.Point]int, n),
	}

	for i, e := range reps {
		p := e.Orig()
		if _, dup := a.index[p]; dup {
			return nil, errors.New(errors.ErrCodeInternal, "vertex %v has more than one representative edge", p)
		}
		a.index[p] = i
		a.coords[i] = p
		a.distance[i] = math.Inf(1)
		a.predecessor[i] = noPredecessor
	}

	for i, start := range reps {
		p := a.coords[i]
		degree := g.Degree(p)
		nbs := make([]int, 0, degree)

		e := start
		for {
			if e.Orig() != p {
				return nil, errors.New(errors.ErrCodeInternal, "ring of vertex %v contains edge %v", p, e)
			}
			j, ok := a.index[e.Dest()]
			if !ok {
				return nil, errors.New(errors.ErrCodeInternal, "edge %v ends at a vertex without a representative edge", e)
			}
			nbs = append(nbs, j)
			e = e.ONext()
			if e == start || len(nbs) > degree {
				break
			}
		}

		if len(nbs) != degree {
			return nil, errors.New(errors.ErrCodeInternal,
				"ring of vertex %v enumerates %d edges, vertex degree is %d", p, len(nbs), degree)
		}
		a.adj[i] = nbs
		a.edges += degree
	}
	a.edges /= 2
	return a, nil
}

func (a *arena) state(i int) State {
	switch {
	case a.visited[i]:
		return Committed
	case a.relaxed[i]:
		return Tentative
	default:
		return Unvisited
	}
}

func (a *arena) weight(i, j int) float64 {
	p, q := a.coords[i], a.coords[j]
	return math.Hypot(q[0]-p[0], q[1]-p[1])
}
