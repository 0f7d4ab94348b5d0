package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/offsetcurve/pkg/cache"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so that cache keys and logging stay consistent.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cached curves. Zero means [cache.TTLCurve].
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled); otherwise lookups
// and writes are reported to the cache hooks as "curve" entries.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	} else {
		c = cache.Observed(c, "curve")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute validates opts and resolves the offset curve, consulting the
// cache first unless opts.Refresh is set.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	inputHash, err := hashLine(opts)
	if err != nil {
		return nil, err
	}
	cacheKey := r.Keyer.CurveKey(inputHash, opts.CurveKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Result
			if err := json.Unmarshal(data, &cached); err == nil {
				cached.CacheHit = true
				cached.InputHash = inputHash
				opts.Logger.Info("loaded cached curve",
					"vertices", len(cached.Curve),
					"length", cached.Length)
				return &cached, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			opts.Logger.Warn("cache lookup failed", "error", err)
		}
	}

	res, err := compute(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}
	res.InputHash = inputHash

	opts.Logger.Info("resolved offset curve",
		"distance", opts.Distance,
		"strategy", opts.Strategy,
		"raw_vertices", res.Stats.RawVertices,
		"fragments", res.Stats.Fragments,
		"vertices", res.Stats.CurveVertices,
		"length", res.Length,
		"duration", res.Stats.Total())

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl()); err != nil {
			opts.Logger.Warn("cache write failed", "error", err)
		}
	}

	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL == 0 {
		return cache.TTLCurve
	}
	return r.TTL
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashLine returns the content hash of the validated input line.
func hashLine(opts Options) (string, error) {
	data, err := json.Marshal(opts.Line)
	if err != nil {
		return "", fmt.Errorf("encode input: %w", err)
	}
	return cache.Hash(data), nil
}
