package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/paulmach/orb"
)

// SVG draws the layers in order, later layers on top.
func SVG(layers []Layer, opts ...Option) []byte {
	v := newViewport(layers, newOptions(opts))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		v.width, v.height, v.width, v.height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="white"/>`+"\n")

	for _, l := range layers {
		if l.Geometry == nil {
			continue
		}
		renderLayer(&buf, v, l)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderLayer(buf *bytes.Buffer, v viewport, l Layer) {
	fmt.Fprintf(buf, `  <g id="layer-%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-linejoin="round" stroke-linecap="round"`,
		l.Name, hex(l.Color), l.Width)
	if l.Dashed {
		fmt.Fprintf(buf, ` stroke-dasharray="%.1f %.1f"`, 4*l.Width, 3*l.Width)
	}
	buf.WriteString(">\n")

	for _, ls := range lines(l.Geometry) {
		if len(ls) < 2 {
			continue
		}
		buf.WriteString(`    <polyline points="`)
		writePoints(buf, v, ls)
		buf.WriteString(`"/>` + "\n")
	}

	if l.Vertices {
		for _, p := range points(l.Geometry) {
			x, y := v.project(p)
			fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="none"/>`+"\n",
				x, y, l.Width*1.2, hex(l.Color))
		}
	}
	buf.WriteString("  </g>\n")
}

func writePoints(buf *bytes.Buffer, v viewport, ls orb.LineString) {
	for i, p := range ls {
		if i > 0 {
			buf.WriteByte(' ')
		}
		x, y := v.project(p)
		fmt.Fprintf(buf, "%.2f,%.2f", x, y)
	}
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
