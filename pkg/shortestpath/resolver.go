// Package shortestpath finds minimum-length paths between two vertices of a
// planar graph.
//
// A [Resolver] runs one single-source search over the graph, weighting every
// segment by its Euclidean length, and stops as soon as the end vertex is
// committed. Two selection strategies are available and always produce paths
// of equal length:
//
//   - [LinearScan] picks the next vertex by scanning every unvisited vertex.
//   - [PriorityQueue] keeps the frontier in a binary heap and discards stale
//     entries as they surface.
//
// Neighbours are enumerated by walking each vertex's counter-clockwise ring
// of half-edges. The ring is checked against the vertex degree when the
// resolver is created, so a graph whose rings miss incident segments is
// rejected with an INTERNAL_ERROR instead of being searched as a directed
// subgraph.
//
// A Resolver owns all search state and is used for exactly one search.
package shortestpath

import (
	"strings"

	"github.com/paulmach/orb"

	"github.com/matzehuels/offsetcurve/pkg/errors"
)

// Strategy selects how the next vertex to commit is chosen.
type Strategy int

const (
	// PriorityQueue selects from a binary heap ordered by distance, ties
	// broken by insertion order.
	PriorityQueue Strategy = iota
	// LinearScan selects by scanning all unvisited vertices.
	LinearScan
)

func (s Strategy) String() string {
	switch s {
	case LinearScan:
		return "linear"
	case PriorityQueue:
		return "priority-queue"
	default:
		return "unknown"
	}
}

// ParseStrategy parses a strategy name: "linear" (or "linear-scan") and
// "priority-queue" (or "pq", "heap").
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "linear-scan", "scan":
		return LinearScan, nil
	case "priority-queue", "pq", "heap", "":
		return PriorityQueue, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidConfig, "unknown strategy %q (must be linear or priority-queue)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Strategies lists all strategies.
func Strategies() []Strategy {
	return []Strategy{PriorityQueue, LinearScan}
}

// Stats describes a finished search.
type Stats struct {
	Strategy     Strategy `json:"strategy"`
	Vertices     int      `json:"vertices"`
	Edges        int      `json:"edges"`
	Committed    int      `json:"committed"`
	Relaxations  int      `json:"relaxations"`
	StaleEntries int      `json:"stale_entries,omitempty"`
	PathVertices int      `json:"path_vertices"`
	Length       float64  `json:"length"`
}

// Resolver runs a single shortest-path search. It is not safe for
// concurrent use.
type Resolver struct {
	strategy Strategy
	arena    *arena
	stats    Stats
	used     bool
}

// NewResolver indexes g for a search with the given strategy. It fails with
// INTERNAL_ERROR when a vertex ring does not enumerate all of the vertex's
// incident segments, and with UNSUPPORTED for an unknown strategy.
func NewResolver(g Graph, strategy Strategy) (*Resolver, error) {
	if strategy != LinearScan && strategy != PriorityQueue {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported strategy %d", int(strategy))
	}
	a, err := newArena(g)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		strategy: strategy,
		arena:    a,
		stats: Stats{
			Strategy: strategy,
			Vertices: len(a.coords),
			Edges:    a.edges,
		},
	}, nil
}

// Resolve returns the shortest path from start to end as an ordered
// sequence of vertex coordinates, both ends included.
//
// Errors:
//   - COORDINATE_NOT_FOUND if start or end is not a vertex
//   - UNREACHABLE_TARGET if end cannot be reached from start
//   - INTERNAL_ERROR if the resolver was already used
func (r *Resolver) Resolve(start, end orb.Point) (orb.LineString, error) {
	if r.used {
		return nil, errors.New(errors.ErrCodeInternal, "resolver already used for a search")
	}
	r.used = true

	a := r.arena
	s, ok := a.index[start]
	if !ok {
		return nil, errors.New(errors.ErrCodeCoordinateNotFound, "start %v is not a vertex of the graph", start)
	}
	t, ok := a.index[end]
	if !ok {
		return nil, errors.New(errors.ErrCodeCoordinateNotFound, "end %v is not a vertex of the graph", end)
	}

	a.distance[s] = 0

	var reached bool
	switch r.strategy {
	case LinearScan:
		reached = r.linearScan(s, t)
	default:
		reached = r.priorityQueue(s, t)
	}
	if !reached {
		return nil, errors.New(errors.ErrCodeUnreachableTarget,
			"search exhausted after %d vertices without reaching %v", r.stats.Committed, end)
	}

	path, err := a.path(s, t)
	if err != nil {
		return nil, err
	}
	r.stats.PathVertices = len(path)
	r.stats.Length = a.distance[t]
	return path, nil
}

// relax lowers the distance of every uncommitted neighbour of cur that can
// be reached more cheaply through cur. improved is called for each lowered
// neighbour.
func (r *Resolver) relax(cur int, improved func(nb int)) {
	a := r.arena
	for _, nb := range a.adj[cur] {
		if a.visited[nb] {
			continue
		}
		candidate := a.distance[cur] + a.weight(cur, nb)
		if candidate < a.distance[nb] {
			a.distance[nb] = candidate
			a.predecessor[nb] = cur
			a.relaxed[nb] = true
			r.stats.Relaxations++
			if improved != nil {
				improved(nb)
			}
		}
	}
}

func (r *Resolver) commit(i int) {
	r.arena.visited[i] = true
	r.stats.Committed++
}

// Stats returns statistics of the search so far.
func (r *Resolver) Stats() Stats {
	return r.stats
}

// State returns the search state of the vertex at p.
func (r *Resolver) State(p orb.Point) (State, bool) {
	i, ok := r.arena.index[p]
	if !ok {
		return Unvisited, false
	}
	return r.arena.state(i), true
}

// Distance returns the current best distance from the start to p. It is
// +Inf for vertices the search has not reached.
func (r *Resolver) Distance(p orb.Point) (float64, bool) {
	i, ok := r.arena.index[p]
	if !ok {
		return 0, false
	}
	return r.arena.distance[i], true
}

// FindPath resolves the shortest path from start to end in g with a fresh
// Resolver.
func FindPath(g Graph, start, end orb.Point, strategy Strategy) (orb.LineString, error) {
	r, err := NewResolver(g, strategy)
	if err != nil {
		return nil, err
	}
	return r.Resolve(start, end)
}
