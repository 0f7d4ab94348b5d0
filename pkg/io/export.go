package io

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/paulmach/orb"

	"github.com/matzehuels/offsetcurve/pkg/errors"
	"github.com/matzehuels/offsetcurve/pkg/geom"
)

// Curve output formats.
const (
	FormatWKT     = "wkt"
	FormatGeoJSON = "geojson"
)

// extensions maps artifact formats to file name suffixes. Formats missing
// here use the format name.
var extensions = map[string]string{
	"graph-svg": ".graph.svg",
	"json":      ".result.json",
}

// WriteCurve encodes curve in format and writes it to w with a trailing
// newline.
func WriteCurve(w io.Writer, curve orb.LineString, format string) error {
	var data []byte
	switch format {
	case FormatWKT:
		data = []byte(geom.FormatWKT(curve))
	case FormatGeoJSON:
		var err error
		if data, err = geom.MarshalGeoJSON(curve); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errors.ValidateFormat(format, FormatWKT, FormatGeoJSON)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportArtifacts writes each artifact to base plus the format's extension
// and returns the written paths in format order. A base ending in one of
// the extensions has it removed first, so "out.svg" and "out" both write
// "out.svg".
func ExportArtifacts(artifacts map[string][]byte, base string) ([]string, error) {
	formats := slices.Sorted(maps.Keys(artifacts))
	for _, f := range formats {
		base = strings.TrimSuffix(base, Extension(f))
	}
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + Extension(f)
		if err := os.WriteFile(path, artifacts[f], 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Extension returns the file name suffix for an artifact format.
func Extension(format string) string {
	if ext, ok := extensions[format]; ok {
		return ext
	}
	return "." + format
}
