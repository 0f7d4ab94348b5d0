// Package cli implements the offsetcurve command-line interface.
//
// # Commands
//
// The main commands are:
//   - compute: Resolve the offset curve of a line and print it as WKT or GeoJSON
//   - render: Draw the input, raw and resolved curves as SVG or PNG
//   - graph: Export the noded arrangement with the chosen path as DOT or SVG
//   - compare: Run both search strategies over a list of distances
//   - serve: Run the HTTP API
//   - cache: Manage the result cache
//
// # Configuration
//
// Buffer parameters, the search strategy and the cache backend come from
// [config.Default], optionally overlaid with a TOML or YAML file passed
// via --config. Command flags override both.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/offsetcurve/pkg/buildinfo"
	"github.com/matzehuels/offsetcurve/pkg/cache"
	"github.com/matzehuels/offsetcurve/pkg/config"
	"github.com/matzehuels/offsetcurve/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	config     config.Config
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Offsetcurve computes single-sided offset curves of lines",
		Long: `Offsetcurve computes the single-sided offset curve of a line at a signed distance.

The raw offset is simplified, noded into a planar arrangement, and the shortest
path between its endpoints is taken as the resolved curve, which removes the
loops that appear at tight inside turns.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (.toml, .yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.computeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig replaces the defaults with the --config file, if one is set.
func (c *CLI) loadConfig() error {
	if c.configPath == "" {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ttl, err := c.config.TTL()
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(c.newCache(ctx, noCache), c.config.Keyer(), c.Logger)
	runner.TTL = ttl
	return runner, nil
}

// newCache opens the configured cache. An unavailable backend degrades to
// no caching with a warning.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	cc, err := c.config.OpenCache(ctx)
	if err != nil {
		c.Logger.Warn("cache disabled", "backend", c.config.Cache.Backend, "err", err)
		return cache.NewNullCache()
	}
	return cc
}
