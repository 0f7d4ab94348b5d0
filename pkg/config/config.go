// Package config loads offsetcurve settings from TOML or YAML files.
//
// A configuration file is optional. Every field has a default, and a file
// only needs the values it changes:
//
//	[buffer]
//	join_style = "mitre"
//	mitre_limit = 2.0
//
//	[cache]
//	backend = "redis"
//	redis_addr = "cache.internal:6379"
//
// The format is chosen by file extension: .toml, or .yaml / .yml.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/offsetcurve/pkg/cache"
	"github.com/matzehuels/offsetcurve/pkg/errors"
	"github.com/matzehuels/offsetcurve/pkg/offset"
	"github.com/matzehuels/offsetcurve/pkg/pipeline"
	"github.com/matzehuels/offsetcurve/pkg/shortestpath"
)

// AppName names the default cache directory.
const AppName = "offsetcurve"

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// =============================================================================
// Config
// =============================================================================

// Config holds all file-backed settings.
type Config struct {
	Buffer   Buffer   `toml:"buffer" yaml:"buffer"`
	Resolver Resolver `toml:"resolver" yaml:"resolver"`
	Cache    Cache    `toml:"cache" yaml:"cache"`
	Server   Server   `toml:"server" yaml:"server"`
}

// Buffer configures raw offset generation and simplification.
type Buffer struct {
	JoinStyle        string  `toml:"join_style" yaml:"join_style"`
	QuadrantSegments int     `toml:"quadrant_segments" yaml:"quadrant_segments"`
	MitreLimit       float64 `toml:"mitre_limit" yaml:"mitre_limit"`
	SimplifyFactor   float64 `toml:"simplify_factor" yaml:"simplify_factor"`
}

// Resolver configures the shortest-path search.
type Resolver struct {
	Strategy string `toml:"strategy" yaml:"strategy"`
}

// Cache configures the result cache.
type Cache struct {
	Backend   string `toml:"backend" yaml:"backend"`
	Dir       string `toml:"dir" yaml:"dir"`
	RedisAddr string `toml:"redis_addr" yaml:"redis_addr"`
	RedisDB   int    `toml:"redis_db" yaml:"redis_db"`
	Prefix    string `toml:"prefix" yaml:"prefix"`
	TTL       string `toml:"ttl" yaml:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr        string `toml:"addr" yaml:"addr"`
	MaxBodySize int64  `toml:"max_body_size" yaml:"max_body_size"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := offset.DefaultParams()
	return Config{
		Buffer: Buffer{
			JoinStyle:        p.JoinStyle.String(),
			QuadrantSegments: p.QuadrantSegments,
			MitreLimit:       p.MitreLimit,
			SimplifyFactor:   p.SimplifyFactor,
		},
		Resolver: Resolver{Strategy: shortestpath.PriorityQueue.String()},
		Cache: Cache{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       cache.TTLCurve.String(),
		},
		Server: Server{
			Addr:        ":8080",
			MaxBodySize: 1 << 20,
		},
	}
}

// Load reads the file at path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting as an INVALID_CONFIG error.
func (c Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return err
	}
	if _, err := c.Strategy(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendNone, BackendFile, BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be one of: none, file, redis)", c.Cache.Backend)
	}
	if _, err := c.TTL(); err != nil {
		return err
	}
	if c.Server.MaxBodySize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_body_size must not be negative")
	}
	return nil
}

// Params returns the validated buffer parameters.
func (c Config) Params() (offset.Params, error) {
	join, err := offset.ParseJoinStyle(c.Buffer.JoinStyle)
	if err != nil {
		return offset.Params{}, err
	}
	p := offset.Params{
		JoinStyle:        join,
		QuadrantSegments: c.Buffer.QuadrantSegments,
		MitreLimit:       c.Buffer.MitreLimit,
		SimplifyFactor:   c.Buffer.SimplifyFactor,
	}
	return p, p.Validate()
}

// Strategy returns the configured search strategy.
func (c Config) Strategy() (shortestpath.Strategy, error) {
	return shortestpath.ParseStrategy(c.Resolver.Strategy)
}

// TTL returns the cache entry lifetime. An empty value means
// [cache.TTLCurve].
func (c Config) TTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return cache.TTLCurve, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "invalid cache ttl %q", c.Cache.TTL)
	}
	return d, nil
}

// CacheDir returns the file cache directory. It defaults to
// $XDG_CACHE_HOME/offsetcurve, or ~/.cache/offsetcurve.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// OpenCache opens the configured cache backend.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case BackendFile:
		dir, err := c.CacheDir()
		if err != nil {
			return nil, fmt.Errorf("get cache dir: %w", err)
		}
		return cache.NewFileCache(dir)
	case BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr: c.Cache.RedisAddr,
			DB:   c.Cache.RedisDB,
		})
	default:
		return cache.NewNullCache(), nil
	}
}

// Keyer returns the cache keyer, scoped by the configured prefix.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Cache.Prefix)
}

// PipelineOptions returns pipeline options for line and distance using the
// configured buffer parameters and strategy.
func (c Config) PipelineOptions(line orb.LineString, distance float64) (pipeline.Options, error) {
	params, err := c.Params()
	if err != nil {
		return pipeline.Options{}, err
	}
	strategy, err := c.Strategy()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Line:     line,
		Distance: distance,
		Params:   params,
		Strategy: strategy,
	}, nil
}
