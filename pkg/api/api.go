// Package api serves the offset-curve pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz    liveness probe, returns {"status": "ok"}
//	GET  /version    build information
//	GET  /metrics    event counters, when Config.Metrics is set
//	POST /v1/offset  resolve an offset curve
//
// # Offset Requests
//
// The body carries the input line as WKT or GeoJSON, the signed distance,
// and optional buffer and strategy overrides:
//
//	{
//	  "wkt": "LINESTRING (0 10, 125 10, 75 0, 200 0)",
//	  "distance": 5,
//	  "buffer": {"join_style": "mitre", "mitre_limit": 2},
//	  "strategy": "linear",
//	  "include": ["raw", "svg"]
//	}
//
// The response holds the resolved curve in both encodings, its length and
// the search statistics. "include" adds the raw, simplified and noded
// geometries as WKT, or rendered "svg" and "dot" artifacts.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/offsetcurve/pkg/buildinfo"
	"github.com/matzehuels/offsetcurve/pkg/httputil"
	"github.com/matzehuels/offsetcurve/pkg/observability"
	"github.com/matzehuels/offsetcurve/pkg/offset"
	"github.com/matzehuels/offsetcurve/pkg/pipeline"
	"github.com/matzehuels/offsetcurve/pkg/shortestpath"
)

// DefaultMaxBodySize bounds request bodies when Config.MaxBodySize is zero.
const DefaultMaxBodySize = 1 << 20

// Config configures the HTTP API.
type Config struct {
	// Runner executes the pipeline. Nil means an uncached runner.
	Runner *pipeline.Runner

	// Logger receives access logs. Nil means the runner's logger.
	Logger *log.Logger

	// Params and Strategy apply when a request does not override them.
	// Zero Params means [offset.DefaultParams].
	Params   offset.Params
	Strategy shortestpath.Strategy

	// MaxBodySize bounds request bodies in bytes.
	MaxBodySize int64

	// Timeout bounds the handling of a single request. Zero disables it.
	Timeout time.Duration

	// Metrics, when set, is served as a JSON snapshot at /metrics. The
	// caller registers it with the observability hooks.
	Metrics *observability.Counters
}

type server struct {
	cfg Config
}

// NewRouter returns the API handler.
func NewRouter(cfg Config) http.Handler {
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = cfg.Runner.Logger
	}
	if cfg.Params == (offset.Params{}) {
		cfg.Params = offset.DefaultParams()
	}
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}
	s := &server{cfg: cfg}

	r := chi.NewRouter()
	r.Use(httputil.RequestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	if cfg.Timeout > 0 {
		r.Use(middleware.Timeout(cfg.Timeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, buildinfo.Get())
	})
	if cfg.Metrics != nil {
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			httputil.WriteJSON(w, http.StatusOK, cfg.Metrics.Snapshot())
		})
	}
	r.Route("/v1", func(r chi.Router) {
		r.Post("/offset", s.handleOffset)
	})

	return r
}

// accessLog logs every request and reports it to the HTTP hooks.
func (s *server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, d)
		s.cfg.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"request_id", httputil.GetRequestID(r.Context()),
			"duration", d)
	})
}
