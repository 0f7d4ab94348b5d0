// Package observability provides hooks for metrics, tracing and logging.
//
// Libraries emit events through the registered hooks; applications register
// implementations at startup. No observability backend is imported here, so
// any of them (Prometheus, OpenTelemetry, plain logs) can be plugged in.
// [Counters] is a ready-made in-process implementation of all three
// interfaces.
//
// # Usage
//
//	counters := observability.NewCounters()
//	observability.SetPipelineHooks(counters)
//	observability.SetCacheHooks(counters)
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnComputeStart(ctx, distance, vertices)
//	// ... resolve ...
//	observability.Pipeline().OnComputeComplete(ctx, length, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the offset-curve pipeline.
type PipelineHooks interface {
	// OnComputeStart is called before raw offset generation with the offset
	// distance and the number of input vertices.
	OnComputeStart(ctx context.Context, distance float64, inputVertices int)

	// OnStageComplete is called after each stage (raw, simplify, node,
	// graph, resolve) with the number of vertices the stage produced.
	OnStageComplete(ctx context.Context, stage string, vertices int, duration time.Duration)

	// OnComputeComplete is called once per computation with the resolved
	// curve length, or the error that ended it.
	OnComputeComplete(ctx context.Context, length float64, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations. keyType names the kind
// of entry, such as "curve".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnComputeStart(context.Context, float64, int)                      {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, int, time.Duration)       {}
func (NoopPipelineHooks) OnComputeComplete(context.Context, float64, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                       {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

// slot holds one registered hook implementation, falling back to noop.
type slot[H any] struct {
	mu   sync.RWMutex
	h    H
	noop H
}

func newSlot[H any](noop H) *slot[H] {
	return &slot[H]{h: noop, noop: noop}
}

func (s *slot[H]) set(h H) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	s.h = h
	s.mu.Unlock()
}

func (s *slot[H]) get() H {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.h
}

func (s *slot[H]) reset() {
	s.mu.Lock()
	s.h = s.noop
	s.mu.Unlock()
}

var (
	pipelineSlot = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetPipelineHooks registers pipeline hooks. A nil value is ignored.
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.set(h) }

// SetCacheHooks registers cache hooks. A nil value is ignored.
func SetCacheHooks(h CacheHooks) { cacheSlot.set(h) }

// SetHTTPHooks registers HTTP hooks. A nil value is ignored.
func SetHTTPHooks(h HTTPHooks) { httpSlot.set(h) }

func Pipeline() PipelineHooks { return pipelineSlot.get() }
func Cache() CacheHooks       { return cacheSlot.get() }
func HTTP() HTTPHooks         { return httpSlot.get() }

// Reset restores all hooks to their no-op defaults.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
