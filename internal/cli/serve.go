package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/offsetcurve/pkg/api"
	"github.com/matzehuels/offsetcurve/pkg/observability"
)

const shutdownTimeout = 10 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string        // listen address (config server.addr if empty)
	timeout time.Duration // per-request timeout
	noCache bool          // disable the result cache
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{timeout: 30 * time.Second}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API on the configured address.

Endpoints:
  GET  /healthz
  GET  /version
  POST /v1/offset`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := opts.addr
			if addr == "" {
				addr = c.config.Server.Addr
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			return c.runServe(cmd.Context(), ln, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout (0 disables)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

// runServe serves the API on ln until ctx is cancelled, then shuts down
// gracefully.
func (c *CLI) runServe(ctx context.Context, ln net.Listener, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	params, err := c.config.Params()
	if err != nil {
		return err
	}
	strategy, err := c.config.Strategy()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	metrics := observability.NewCounters()
	observability.SetPipelineHooks(metrics)
	observability.SetCacheHooks(metrics)
	observability.SetHTTPHooks(metrics)
	defer observability.Reset()

	srv := &http.Server{
		Handler: api.NewRouter(api.Config{
			Runner:      runner,
			Logger:      logger,
			Params:      params,
			Strategy:    strategy,
			MaxBodySize: c.config.Server.MaxBodySize,
			Timeout:     opts.timeout,
			Metrics:     metrics,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", ln.Addr().String(), "strategy", strategy, "cache", c.config.Cache.Backend)
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-done; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("stopped")
	return nil
}
