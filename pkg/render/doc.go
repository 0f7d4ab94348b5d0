// Package render draws offset-curve results for inspection.
//
// # Overview
//
// A picture is built from [Layer] values, each a geometry with a stroke
// style. The pipeline produces three layers: the input line, the raw offset
// curve (which may loop around sharp corners) and the resolved curve.
//
//	layers := []render.Layer{
//	    render.InputLayer(line),
//	    render.RawLayer(raw),
//	    render.ResolvedLayer(resolved),
//	}
//	svg := render.SVG(layers)
//	png, err := render.PNG(layers, render.WithSize(1024))
//
// # Arrangement View
//
// [ToDOT] writes the noded planar arrangement as a Graphviz graph with the
// resolved path highlighted, and [RenderDOTSVG] lays it out with Graphviz.
// This view shows the graph the shortest-path search ran on, which helps
// when a resolved curve takes an unexpected branch.
//
// # Coordinates
//
// Geometries are fitted into a square viewport with a margin. The y axis is
// flipped so that the picture matches the usual map orientation.
package render
