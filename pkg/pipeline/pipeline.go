// Package pipeline provides the offset-curve pipeline for offsetcurve.
//
// This package implements the complete raw → simplify → node → resolve
// pipeline used by the CLI and the HTTP API. Centralizing it here keeps
// both entry points producing identical curves for identical inputs.
//
// # Architecture
//
// The pipeline consists of five stages:
//
//  1. Raw: build the offset of the input line, which may loop at sharp
//     inside corners
//  2. Simplify: Douglas-Peucker with tolerance |distance| × simplify factor
//  3. Node: split the simplified curve at every self-intersection
//  4. Graph: build the planar arrangement of the noded fragments
//  5. Resolve: shortest path from the curve's first to its last coordinate
//
// The loops that a raw offset forms at inside corners are cycles of the
// arrangement, and the shortest path never takes them.
//
// # Usage
//
// For a single curve without caching or logging, use [Compute]:
//
//	curve, err := pipeline.Compute(line, 5, offset.DefaultParams(), shortestpath.PriorityQueue)
//
// Create a Runner to get logging, caching and the intermediate geometries:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Line:     line,
//	    Distance: 5,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Length)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"

	"github.com/matzehuels/offsetcurve/pkg/cache"
	"github.com/matzehuels/offsetcurve/pkg/errors"
	"github.com/matzehuels/offsetcurve/pkg/offset"
	"github.com/matzehuels/offsetcurve/pkg/planargraph"
	"github.com/matzehuels/offsetcurve/pkg/shortestpath"
)

// =============================================================================
// Stage Names
// =============================================================================

// Stage names reported to logs and [observability.PipelineHooks].
const (
	StageRaw      = "raw"
	StageSimplify = "simplify"
	StageNode     = "node"
	StageGraph    = "graph"
	StageResolve  = "resolve"
)

// =============================================================================
// Output Formats
// =============================================================================

// Format constants for output artifacts.
const (
	FormatWKT     = "wkt"
	FormatGeoJSON = "geojson"
	FormatJSON    = "json"
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatDOT     = "dot"
	FormatGraph   = "graph-svg"
)

// CurveFormats are the formats of the resolved curve alone.
var CurveFormats = []string{FormatWKT, FormatGeoJSON, FormatJSON}

// RenderFormats are the formats that draw a result.
var RenderFormats = []string{FormatSVG, FormatPNG, FormatDOT, FormatGraph}

// ValidateFormats checks that every format is a curve or render format.
func ValidateFormats(formats []string) error {
	allowed := append(append([]string{}, CurveFormats...), RenderFormats...)
	for _, f := range formats {
		if err := errors.ValidateFormat(f, allowed...); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Line is the input line. Repeated consecutive points are ignored.
	Line orb.LineString `json:"-"`

	// Distance is the signed offset distance. Positive distances offset to
	// the left of the line direction, negative ones to the right.
	Distance float64 `json:"distance"`

	// Params is the buffer configuration. The zero value means
	// [offset.DefaultParams].
	Params offset.Params `json:"buffer"`

	// Strategy selects the shortest-path frontier.
	Strategy shortestpath.Strategy `json:"strategy"`

	// Refresh recomputes the curve and overwrites any cached result.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the input and applies defaults.
// This method is idempotent.
//
// Errors:
//   - INVALID_OFFSET_INPUT for a zero or non-finite distance, or a line with
//     fewer than two distinct points
//   - INVALID_CONFIG for invalid buffer parameters or an unknown strategy
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateDistance(o.Distance); err != nil {
		return err
	}
	if err := errors.ValidateLine(o.Line); err != nil {
		return err
	}
	if o.Params == (offset.Params{}) {
		o.Params = offset.DefaultParams()
	}
	if err := o.Params.Validate(); err != nil {
		return err
	}
	if o.Strategy != shortestpath.PriorityQueue && o.Strategy != shortestpath.LinearScan {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown strategy %d", int(o.Strategy))
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// CurveKeyOpts returns the cache key options for the resolved curve.
func (o *Options) CurveKeyOpts() cache.CurveKeyOpts {
	return cache.CurveKeyOpts{
		Distance:         o.Distance,
		JoinStyle:        o.Params.JoinStyle.String(),
		QuadrantSegments: o.Params.QuadrantSegments,
		MitreLimit:       o.Params.MitreLimit,
		SimplifyFactor:   o.Params.SimplifyFactor,
		Strategy:         o.Strategy.String(),
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Input is the input line with repeated points removed.
	Input orb.LineString `json:"input"`

	// Raw is the unresolved offset curve.
	Raw orb.LineString `json:"raw"`

	// Simplified is the raw curve after simplification. The resolved curve
	// starts at its first and ends at its last coordinate.
	Simplified orb.LineString `json:"simplified"`

	// Noded is the simplified curve split at its self-intersections.
	Noded orb.MultiLineString `json:"noded"`

	// Curve is the resolved offset curve.
	Curve orb.LineString `json:"curve"`

	// Length is the length of Curve.
	Length float64 `json:"length"`

	// Search describes the shortest-path search.
	Search shortestpath.Stats `json:"search"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// InputHash is the content hash of the input line.
	InputHash string `json:"input_hash,omitempty"`

	// CacheHit reports whether the result came from the cache.
	CacheHit bool `json:"-"`

	graph *planargraph.Graph
}

// Graph returns the planar arrangement the curve was resolved on. Results
// loaded from the cache rebuild it from Noded on first use.
func (r *Result) Graph() *planargraph.Graph {
	if r.graph == nil {
		g := planargraph.New()
		for _, ls := range r.Noded {
			g.AddLineString(ls)
		}
		r.graph = g
	}
	return r.graph
}

// Stats contains pipeline execution statistics.
type Stats struct {
	InputVertices      int `json:"input_vertices"`
	RawVertices        int `json:"raw_vertices"`
	SimplifiedVertices int `json:"simplified_vertices"`
	Fragments          int `json:"fragments"`
	GraphVertices      int `json:"graph_vertices"`
	GraphEdges         int `json:"graph_edges"`
	CurveVertices      int `json:"curve_vertices"`

	RawTime      time.Duration `json:"raw_ns"`
	SimplifyTime time.Duration `json:"simplify_ns"`
	NodeTime     time.Duration `json:"node_ns"`
	GraphTime    time.Duration `json:"graph_ns"`
	ResolveTime  time.Duration `json:"resolve_ns"`
}

// Total returns the summed stage time.
func (s Stats) Total() time.Duration {
	return s.RawTime + s.SimplifyTime + s.NodeTime + s.GraphTime + s.ResolveTime
}
