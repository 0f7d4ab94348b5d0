package pipeline

import (
	"context"
	"time"

	"github.com/paulmach/orb"

	"github.com/matzehuels/offsetcurve/pkg/errors"
	"github.com/matzehuels/offsetcurve/pkg/geom"
	"github.com/matzehuels/offsetcurve/pkg/noding"
	"github.com/matzehuels/offsetcurve/pkg/observability"
	"github.com/matzehuels/offsetcurve/pkg/offset"
	"github.com/matzehuels/offsetcurve/pkg/planargraph"
	"github.com/matzehuels/offsetcurve/pkg/shortestpath"
)

// Compute returns the resolved offset curve of line at the signed distance.
//
// Errors:
//   - INVALID_OFFSET_INPUT for a zero or non-finite distance, or a line with
//     fewer than two distinct points
//   - INVALID_CONFIG for invalid params
//   - DISCONNECTED_GRAPH (wrapping UNREACHABLE_TARGET) when the curve's end
//     cannot be reached from its start in the noded arrangement
//   - COORDINATE_NOT_FOUND or INTERNAL_ERROR from the resolver
func Compute(line orb.LineString, distance float64, params offset.Params, strategy shortestpath.Strategy) (orb.LineString, error) {
	opts := Options{Line: line, Distance: distance, Params: params, Strategy: strategy}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	res, err := compute(context.Background(), opts)
	if err != nil {
		return nil, err
	}
	return res.Curve, nil
}

// compute runs every stage on validated options. ctx is checked between
// stages; a stage itself runs to completion.
func compute(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	hooks := observability.Pipeline()
	start := time.Now()

	res := &Result{Input: geom.RemoveRepeated(opts.Line)}
	res.Stats.InputVertices = len(res.Input)
	hooks.OnComputeStart(ctx, opts.Distance, len(res.Input))

	finish := func(err error) (*Result, error) {
		hooks.OnComputeComplete(ctx, res.Length, time.Since(start), err)
		if err != nil {
			return nil, err
		}
		return res, nil
	}

	stage := func(name string, vertices int, began time.Time, into *time.Duration) {
		*into = time.Since(began)
		hooks.OnStageComplete(ctx, name, vertices, *into)
		logger.Debug("stage complete", "stage", name, "vertices", vertices, "duration", *into)
	}

	// Stage 1: Raw
	began := time.Now()
	res.Raw = offset.NewBuilder(opts.Params).Curve(res.Input, opts.Distance)
	if len(res.Raw) < 2 {
		return finish(errors.New(errors.ErrCodeInternal, "raw offset has %d points", len(res.Raw)))
	}
	res.Stats.RawVertices = len(res.Raw)
	stage(StageRaw, len(res.Raw), began, &res.Stats.RawTime)
	if err := ctx.Err(); err != nil {
		return finish(err)
	}

	// Stage 2: Simplify
	began = time.Now()
	res.Simplified = geom.Simplify(res.Raw, opts.Params.Tolerance(opts.Distance))
	res.Stats.SimplifiedVertices = len(res.Simplified)
	stage(StageSimplify, len(res.Simplified), began, &res.Stats.SimplifyTime)
	if err := ctx.Err(); err != nil {
		return finish(err)
	}

	// Stage 3: Node
	began = time.Now()
	res.Noded = noding.ToGeometry(noding.Node([]orb.LineString{res.Simplified}))
	res.Stats.Fragments = len(res.Noded)
	stage(StageNode, len(res.Noded), began, &res.Stats.NodeTime)
	if err := ctx.Err(); err != nil {
		return finish(err)
	}

	// Stage 4: Graph
	began = time.Now()
	g := planargraph.New()
	if err := g.AddGeometry(res.Noded); err != nil {
		return finish(errors.Wrap(errors.ErrCodeInternal, err, "build planar graph"))
	}
	res.graph = g
	res.Stats.GraphVertices = g.VertexCount()
	res.Stats.GraphEdges = g.EdgeCount()
	stage(StageGraph, g.VertexCount(), began, &res.Stats.GraphTime)
	if err := ctx.Err(); err != nil {
		return finish(err)
	}

	// Stage 5: Resolve
	began = time.Now()
	first, last := res.Simplified[0], res.Simplified[len(res.Simplified)-1]
	resolver, err := shortestpath.NewResolver(g, opts.Strategy)
	if err != nil {
		return finish(err)
	}
	path, err := resolver.Resolve(first, last)
	res.Search = resolver.Stats()
	if err != nil {
		if errors.Is(err, errors.ErrCodeUnreachableTarget) {
			err = errors.Wrap(errors.ErrCodeDisconnectedGraph, err, "resolve offset curve")
		}
		return finish(err)
	}
	res.Curve = path
	res.Length = geom.Length(path)
	res.Stats.CurveVertices = len(path)
	stage(StageResolve, len(path), began, &res.Stats.ResolveTime)

	return finish(nil)
}
