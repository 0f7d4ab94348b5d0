package shortestpath

import "math"

// linearScan commits vertices in distance order, selecting each one with a
// full scan of the unvisited vertices. It reports whether t was committed.
func (r *Resolver) linearScan(s, t int) bool {
	a := r.arena
	cur := s
	for {
		r.commit(cur)
		if cur == t {
			return true
		}
		r.relax(cur, nil)

		next := -1
		for i, d := range a.distance {
			if a.visited[i] || math.IsInf(d, 1) {
				continue
			}
			if next < 0 || d < a.distance[next] {
				next = i
			}
		}
		if next < 0 {
			return false
		}
		cur = next
	}
}
