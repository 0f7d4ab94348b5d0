package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRegistryDefaults(t *testing.T) {
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}
}

func TestRegistrySetAndReset(t *testing.T) {
	defer Reset()
	c := NewCounters()

	SetPipelineHooks(c)
	SetCacheHooks(c)
	SetHTTPHooks(c)
	if Pipeline() != PipelineHooks(c) || Cache() != CacheHooks(c) || HTTP() != HTTPHooks(c) {
		t.Fatal("registered counters not returned")
	}

	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(c) {
		t.Error("SetPipelineHooks(nil) replaced the registered hooks")
	}

	Reset()
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() did not restore NoopHTTPHooks")
	}
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()

	c.OnComputeStart(ctx, 5, 4)
	c.OnStageComplete(ctx, "raw", 42, 2*time.Millisecond)
	c.OnStageComplete(ctx, "raw", 40, 3*time.Millisecond)
	c.OnStageComplete(ctx, "resolve", 12, time.Millisecond)
	c.OnComputeComplete(ctx, 210.5, 10*time.Millisecond, nil)
	c.OnComputeComplete(ctx, 0, time.Millisecond, errors.New("disconnected"))
	c.OnCacheMiss(ctx, "curve")
	c.OnCacheSet(ctx, "curve", 1024)
	c.OnCacheHit(ctx, "curve")
	c.OnRequest(ctx, "POST", "/v1/offset")
	c.OnResponse(ctx, "POST", "/v1/offset", 200, time.Millisecond)
	c.OnResponse(ctx, "POST", "/v1/offset", 422, time.Millisecond)

	s := c.Snapshot()
	tests := []struct {
		name      string
		got, want any
	}{
		{"computations", s.Computations, 2},
		{"failures", s.Failures, 1},
		{"compute time", s.ComputeTime, 11 * time.Millisecond},
		{"raw stage", s.Stages["raw"], 5 * time.Millisecond},
		{"resolve stage", s.Stages["resolve"], time.Millisecond},
		{"hits", s.CacheHits, 1},
		{"misses", s.CacheMisses, 1},
		{"bytes", s.CacheBytes, 1024},
		{"requests", s.Requests, 1},
		{"200s", s.Statuses[200], 1},
		{"422s", s.Statuses[422], 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestCountersSnapshotIsolated(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()
	c.OnStageComplete(ctx, "node", 3, time.Millisecond)

	s := c.Snapshot()
	c.OnStageComplete(ctx, "node", 3, time.Millisecond)
	c.OnResponse(ctx, "GET", "/healthz", 200, 0)

	if s.Stages["node"] != time.Millisecond || len(s.Statuses) != 0 {
		t.Errorf("snapshot changed after later events: %+v", s)
	}
}

func TestCountersConcurrent(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.OnCacheHit(ctx, "curve")
				c.OnComputeComplete(ctx, 1, time.Microsecond, nil)
			}
		}()
	}
	wg.Wait()

	if s := c.Snapshot(); s.CacheHits != 800 || s.Computations != 800 {
		t.Errorf("hits=%d computations=%d, want 800 each", s.CacheHits, s.Computations)
	}
}
