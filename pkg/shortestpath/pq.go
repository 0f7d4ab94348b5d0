package shortestpath

import (
	"math"

	"github.com/emirpasic/gods/queues/priorityqueue"
)

// entry is a frontier record. dist is the vertex distance at the time the
// entry was pushed; a later relaxation pushes a new entry instead of
// updating this one.
type entry struct {
	node int
	dist float64
	seq  int
}

// byDistance orders entries by ascending distance, infinite last, then by
// push order.
func byDistance(a, b interface{}) int {
	x, y := a.(entry), b.(entry)
	xi, yi := math.IsInf(x.dist, 1), math.IsInf(y.dist, 1)
	switch {
	case xi != yi:
		if xi {
			return 1
		}
		return -1
	case x.dist < y.dist:
		return -1
	case x.dist > y.dist:
		return 1
	case x.seq < y.seq:
		return -1
	case x.seq > y.seq:
		return 1
	default:
		return 0
	}
}

// priorityQueue commits vertices in distance order using a binary heap.
// Entries whose vertex is already committed, or whose distance is larger than
// the vertex's current distance, are stale and skipped. It reports whether t
// was committed.
func (r *Resolver) priorityQueue(s, t int) bool {
	a := r.arena
	q := priorityqueue.NewWith(byDistance)
	seq := 0
	push := func(i int) {
		q.Enqueue(entry{node: i, dist: a.distance[i], seq: seq})
		seq++
	}

	push(s)
	for !q.Empty() {
		v, _ := q.Dequeue()
		e := v.(entry)
		if a.visited[e.node] || e.dist > a.distance[e.node] {
			r.stats.StaleEntries++
			continue
		}

		r.commit(e.node)
		if e.node == t {
			return true
		}
		r.relax(e.node, push)
	}
	return false
}
