// Package pkg provides the libraries behind offsetcurve.
//
// # Overview
//
// Offsetcurve computes the single-sided offset curve of a line at a signed
// distance. At tight inside turns a naive offset folds back on itself; the
// fold is removed by noding the raw curve into a planar arrangement and
// taking the shortest path between its endpoints.
//
// # Architecture
//
// The data flow through a computation:
//
//	input line (WKT / GeoJSON)
//	         ↓
//	    [offset] raw offset curve with joins
//	         ↓
//	    [geom] Douglas-Peucker simplification
//	         ↓
//	    [noding] split at every intersection
//	         ↓
//	    [planargraph] half-edge arrangement
//	         ↓
//	    [shortestpath] resolved curve
//
// [pipeline] runs these stages with caching ([cache]) and hooks
// ([observability]). [render] draws results, [api] serves them over HTTP and
// [config] loads defaults from TOML or YAML.
//
// # Quick Start
//
//	import (
//	    "github.com/paulmach/orb"
//	    "github.com/matzehuels/offsetcurve/pkg/offset"
//	    "github.com/matzehuels/offsetcurve/pkg/pipeline"
//	    "github.com/matzehuels/offsetcurve/pkg/shortestpath"
//	)
//
//	line := orb.LineString{{0, 10}, {125, 10}, {75, 0}, {200, 0}}
//	curve, err := pipeline.Compute(line, 10, offset.DefaultParams(), shortestpath.PriorityQueue)
//
// # Errors
//
// Failures carry an [errors.Code] such as INVALID_OFFSET_INPUT or
// DISCONNECTED_GRAPH; use [errors.Is] to test for them through wrapping.
package pkg
