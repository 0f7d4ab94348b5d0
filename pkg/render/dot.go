package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
	"github.com/paulmach/orb"

	"github.com/matzehuels/offsetcurve/pkg/planargraph"
)

// ToDOT converts a planar graph to an undirected Graphviz graph. Vertices are
// labelled with their coordinates. Vertices and segments of path are drawn in
// the resolved colour, the path's endpoints as double circles.
func ToDOT(g *planargraph.Graph, path orb.LineString) string {
	onPath := make(map[orb.Point]bool, len(path))
	pathEdge := make(map[[2]orb.Point]bool, len(path))
	for i, p := range path {
		onPath[p] = true
		if i > 0 {
			pathEdge[[2]orb.Point{path[i-1], p}] = true
			pathEdge[[2]orb.Point{p, path[i-1]}] = true
		}
	}

	ids := make(map[orb.Point]int, g.VertexCount())
	resolved := hex(ColorResolved)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3];\n")
	buf.WriteString("\n")

	for i, p := range g.Vertices() {
		ids[p] = i
		attrs := fmt.Sprintf("label=%q", fmtCoord(p))
		if onPath[p] {
			attrs += fmt.Sprintf(", color=%q, fontcolor=%q", resolved, resolved)
		}
		if len(path) > 0 && (p == path[0] || p == path[len(path)-1]) {
			attrs += ", shape=doublecircle"
		}
		fmt.Fprintf(&buf, "  v%d [%s];\n", i, attrs)
	}

	buf.WriteString("\n")
	for _, e := range g.Segments() {
		attrs := fmt.Sprintf("label=%q", strconv.FormatFloat(e.Length(), 'g', 4, 64))
		if pathEdge[[2]orb.Point{e.Orig(), e.Dest()}] {
			attrs += fmt.Sprintf(", color=%q, penwidth=2.5", resolved)
		}
		fmt.Fprintf(&buf, "  v%d -- v%d [%s];\n", ids[e.Orig()], ids[e.Dest()], attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtCoord(p orb.Point) string {
	return strconv.FormatFloat(p[0], 'g', 6, 64) + " " + strconv.FormatFloat(p[1], 'g', 6, 64)
}

// RenderDOTSVG lays out a DOT graph with Graphviz and returns the SVG.
func RenderDOTSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one
// sized in pixels.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
