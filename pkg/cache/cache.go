// Package cache provides result caching for resolved offset curves.
//
// A resolved curve depends only on its input line and the offset settings,
// so results are content-addressed: the [Keyer] hashes the input geometry
// together with every setting that changes the output, and the pipeline
// stores the encoded result under that key.
//
// # Backends
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one zstd-compressed file per entry, for the CLI
//   - [RedisCache]: shared cache for API deployments
//
// [Observed] wraps any backend and reports hits, misses and writes to the
// registered observability hooks.
//
// # Usage
//
//	c, err := cache.NewFileCache(dir)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	key := cache.NewDefaultKeyer().CurveKey(cache.Hash([]byte(wkt)), opts)
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Cache TTLs.
const (
	// TTLCurve is how long resolved curves are kept. Results are
	// deterministic, so the TTL only bounds disk and memory usage.
	TTLCurve = 7 * 24 * time.Hour
)

// NullCache is a cache that never stores anything.
type NullCache struct{}

// NewNullCache returns a cache with caching disabled.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always misses.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
