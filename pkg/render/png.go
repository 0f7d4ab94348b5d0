package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/vector"
)

// dashes are in multiples of the stroke width.
const (
	dashOn  = 4.0
	dashOff = 3.0
)

// PNG rasterizes the layers in order, later layers on top.
func PNG(layers []Layer, opts ...Option) ([]byte, error) {
	v := newViewport(layers, newOptions(opts))
	w, h := int(v.width), int(v.height)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	z := vector.NewRasterizer(w, h)
	for _, l := range layers {
		if l.Geometry == nil {
			continue
		}
		src := image.NewUniform(l.Color)
		for _, ls := range lines(l.Geometry) {
			for i := 1; i < len(ls); i++ {
				x0, y0 := v.project(ls[i-1])
				x1, y1 := v.project(ls[i])
				if l.Dashed {
					dashed(z, img, src, x0, y0, x1, y1, l.Width)
				} else {
					stroke(z, img, src, x0, y0, x1, y1, l.Width)
				}
			}
		}
		if l.Vertices {
			for _, p := range points(l.Geometry) {
				x, y := v.project(p)
				dot(z, img, src, x, y, l.Width*1.2)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// stroke fills the rectangle of the given width around one segment. The
// rasterizer is reset per shape so overlapping shapes never cancel.
func stroke(z *vector.Rasterizer, dst draw.Image, src image.Image, x0, y0, x1, y1, width float64) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	// half-width normal, extended along the segment for square caps
	nx, ny := -dy/l*width/2, dx/l*width/2
	ex, ey := dx/l*width/2, dy/l*width/2

	b := dst.Bounds()
	z.Reset(b.Dx(), b.Dy())
	z.MoveTo(float32(x0-ex+nx), float32(y0-ey+ny))
	z.LineTo(float32(x1+ex+nx), float32(y1+ey+ny))
	z.LineTo(float32(x1+ex-nx), float32(y1+ey-ny))
	z.LineTo(float32(x0-ex-nx), float32(y0-ey-ny))
	z.ClosePath()
	z.Draw(dst, b, src, image.Point{})
}

func dashed(z *vector.Rasterizer, dst draw.Image, src image.Image, x0, y0, x1, y1, width float64) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	on, period := dashOn*width, (dashOn+dashOff)*width
	for s := 0.0; s < l; s += period {
		e := math.Min(s+on, l)
		stroke(z, dst, src, x0+dx*s/l, y0+dy*s/l, x0+dx*e/l, y0+dy*e/l, width)
	}
}

func dot(z *vector.Rasterizer, dst draw.Image, src image.Image, cx, cy, r float64) {
	const n = 12
	b := dst.Bounds()
	z.Reset(b.Dx(), b.Dy())
	z.MoveTo(float32(cx+r), float32(cy))
	for k := 1; k < n; k++ {
		a := 2 * math.Pi * float64(k) / n
		z.LineTo(float32(cx+r*math.Cos(a)), float32(cy+r*math.Sin(a)))
	}
	z.ClosePath()
	z.Draw(dst, b, src, image.Point{})
}
