package cache

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/offsetcurve/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v, want a miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	payload := bytes.Repeat([]byte(`{"wkt":"LINESTRING(0 15, 125 15)"}`), 50)
	if err := c.Set(ctx, "curve:abc", payload, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, hit, err := c.Get(ctx, "curve:abc")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v", hit, err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("Get returned different data")
	}

	// payload is stored compressed
	raw, err := os.ReadFile(c.path("curve:abc"))
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) >= len(payload) {
		t.Errorf("entry is %d bytes, payload %d; expected compression", len(raw), len(payload))
	}

	if err := c.Delete(ctx, "curve:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "curve:abc"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "curve:abc"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !errors.Is(err, os.ErrNotExist) {
		t.Error("expired entry should be removed")
	}

	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without TTL should hit")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "bad")
	if !errors.Is(err, ErrCorrupt) || hit || data != nil {
		t.Errorf("Get = %q, %v, %v, want a corrupt miss", data, hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry was not removed")
	}
	if _, hit, err := c.Get(ctx, "bad"); err != nil || hit {
		t.Errorf("second Get = %v, %v, want a plain miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil || n != 3 {
		t.Errorf("Clear() = %d, %v, want 3", n, err)
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestRedisCacheUnavailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("NewRedisCache() error = %v, want ErrUnavailable", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("LINESTRING(0 0, 1 1)"))
	if h1 != Hash([]byte("LINESTRING(0 0, 1 1)")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("LINESTRING(0 0, 1 2)")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := CurveKeyOpts{Distance: 5, JoinStyle: "round", QuadrantSegments: 8, MitreLimit: 5, SimplifyFactor: 0.01, Strategy: "priority-queue"}

	key := k.CurveKey("abc", base)
	if !strings.HasPrefix(key, "curve:") {
		t.Errorf("CurveKey = %q, want curve: prefix", key)
	}
	if key != k.CurveKey("abc", base) {
		t.Error("CurveKey should be deterministic")
	}
	if key == k.CurveKey("abd", base) {
		t.Error("different inputs should produce different keys")
	}

	variants := []func(*CurveKeyOpts){
		func(o *CurveKeyOpts) { o.Distance = -5 },
		func(o *CurveKeyOpts) { o.JoinStyle = "bevel" },
		func(o *CurveKeyOpts) { o.QuadrantSegments = 4 },
		func(o *CurveKeyOpts) { o.MitreLimit = 2 },
		func(o *CurveKeyOpts) { o.SimplifyFactor = 0 },
		func(o *CurveKeyOpts) { o.Strategy = "linear" },
	}
	for i, mutate := range variants {
		o := base
		mutate(&o)
		if k.CurveKey("abc", o) == key {
			t.Errorf("variant %d should change the key", i)
		}
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "tenant:1:")
	key := scoped.CurveKey("abc", CurveKeyOpts{})
	if !strings.HasPrefix(key, "tenant:1:curve:") {
		t.Errorf("ScopedKeyer key should be prefixed: %s", key)
	}

	if NewScopedKeyer(nil, "p:").CurveKey("abc", CurveKeyOpts{}) != "p:"+NewDefaultKeyer().CurveKey("abc", CurveKeyOpts{}) {
		t.Error("nil inner keyer should default to DefaultKeyer")
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrUnavailable)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("wrapped error should unwrap")
	}
	if IsRetryable(ErrCorrupt) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, 3, time.Millisecond, func() error {
		calls++
		return ErrCorrupt
	})
	if err != ErrCorrupt || calls != 1 {
		t.Errorf("non-retryable: err %v after %d calls", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return Retryable(ErrUnavailable)
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("retryable: err %v after %d calls", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, 2, time.Millisecond, func() error {
		calls++
		return Retryable(ErrUnavailable)
	})
	if !errors.Is(err, ErrUnavailable) || calls != 2 {
		t.Errorf("exhausted: err %v after %d calls", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, 3, time.Hour, func() error {
		return Retryable(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

type countingHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestObserved(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := Observed(fc, "curve")
	defer c.Close()

	c.Get(ctx, "k")
	c.Set(ctx, "k", []byte("v"), 0)
	c.Get(ctx, "k")

	if hooks.hits != 1 || hooks.misses != 1 || hooks.sets != 1 {
		t.Errorf("hooks = %d hits, %d misses, %d sets", hooks.hits, hooks.misses, hooks.sets)
	}
}
