package observability

import (
	"context"
	"sync"
	"time"
)

// Counters aggregates hook events in memory. It implements [PipelineHooks],
// [CacheHooks] and [HTTPHooks] and is safe for concurrent use.
type Counters struct {
	mu   sync.Mutex
	snap Snapshot
}

// Snapshot is a point-in-time copy of [Counters].
type Snapshot struct {
	Computations int                      `json:"computations"`
	Failures     int                      `json:"failures"`
	ComputeTime  time.Duration            `json:"compute_time_ns"`
	Stages       map[string]time.Duration `json:"stage_time_ns"`
	CacheHits    int                      `json:"cache_hits"`
	CacheMisses  int                      `json:"cache_misses"`
	CacheBytes   int                      `json:"cache_bytes_written"`
	Requests     int                      `json:"requests"`
	Statuses     map[int]int              `json:"responses_by_status"`
}

func NewCounters() *Counters {
	return &Counters{snap: Snapshot{
		Stages:   make(map[string]time.Duration),
		Statuses: make(map[int]int),
	}}
}

// Snapshot returns a copy that later events do not change.
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.snap
	s.Stages = make(map[string]time.Duration, len(c.snap.Stages))
	for k, v := range c.snap.Stages {
		s.Stages[k] = v
	}
	s.Statuses = make(map[int]int, len(c.snap.Statuses))
	for k, v := range c.snap.Statuses {
		s.Statuses[k] = v
	}
	return s
}

func (c *Counters) update(f func(*Snapshot)) {
	c.mu.Lock()
	f(&c.snap)
	c.mu.Unlock()
}

func (c *Counters) OnComputeStart(context.Context, float64, int) {}

func (c *Counters) OnStageComplete(_ context.Context, stage string, _ int, d time.Duration) {
	c.update(func(s *Snapshot) { s.Stages[stage] += d })
}

func (c *Counters) OnComputeComplete(_ context.Context, _ float64, d time.Duration, err error) {
	c.update(func(s *Snapshot) {
		s.Computations++
		s.ComputeTime += d
		if err != nil {
			s.Failures++
		}
	})
}

func (c *Counters) OnCacheHit(context.Context, string) {
	c.update(func(s *Snapshot) { s.CacheHits++ })
}

func (c *Counters) OnCacheMiss(context.Context, string) {
	c.update(func(s *Snapshot) { s.CacheMisses++ })
}

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.update(func(s *Snapshot) { s.CacheBytes += size })
}

func (c *Counters) OnRequest(context.Context, string, string) {
	c.update(func(s *Snapshot) { s.Requests++ })
}

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	c.update(func(s *Snapshot) { s.Statuses[status]++ })
}

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
	_ HTTPHooks     = (*Counters)(nil)
)
