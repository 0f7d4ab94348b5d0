package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/offsetcurve/pkg/geom"
	"github.com/matzehuels/offsetcurve/pkg/render"
)

// Render generates output artifacts of a result in the requested formats.
// Curve formats encode the resolved curve; render formats draw the input,
// raw and resolved curves or the noded arrangement.
func Render(res *Result, formats []string, opts ...render.Option) (map[string][]byte, error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatWKT:
			data = []byte(geom.FormatWKT(res.Curve))
		case FormatGeoJSON:
			data, err = geom.MarshalGeoJSON(res.Curve)
		case FormatJSON:
			data, err = json.MarshalIndent(res, "", "  ")
		case FormatSVG:
			data = render.SVG(Layers(res), opts...)
		case FormatPNG:
			data, err = render.PNG(Layers(res), opts...)
		case FormatDOT:
			data = []byte(render.ToDOT(res.Graph(), res.Curve))
		case FormatGraph:
			data, err = render.RenderDOTSVG(render.ToDOT(res.Graph(), res.Curve))
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// Layers returns the input, raw and resolved layers of a result.
func Layers(res *Result) []render.Layer {
	return []render.Layer{
		render.InputLayer(res.Input),
		render.RawLayer(res.Raw),
		render.ResolvedLayer(res.Curve),
	}
}
