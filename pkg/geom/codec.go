package geom

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"

	"github.com/matzehuels/offsetcurve/pkg/errors"
)

// ParseLine decodes a single line from WKT or GeoJSON text. GeoJSON is
// detected by a leading '{'. A MultiLineString with exactly one component is
// accepted as that component.
func ParseLine(s string) (orb.LineString, error) {
	g, err := ParseGeometry(s)
	if err != nil {
		return nil, err
	}
	switch v := g.(type) {
	case orb.LineString:
		return v, nil
	case orb.MultiLineString:
		if len(v) == 1 {
			return v[0], nil
		}
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "expected a single line, got %d components", len(v))
	default:
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "expected LineString, got %s", g.GeoJSONType())
	}
}

// ParseGeometry decodes WKT or GeoJSON text into an orb geometry.
func ParseGeometry(s string) (orb.Geometry, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "geometry input is empty")
	}

	if strings.HasPrefix(s, "{") {
		return ParseGeoJSON([]byte(s))
	}
	return ParseWKT(s)
}

// ParseWKT decodes WKT text.
func ParseWKT(s string) (orb.Geometry, error) {
	g, err := wkt.Unmarshal(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "parse WKT")
	}
	return g, nil
}

// ParseGeoJSON decodes a GeoJSON geometry object.
func ParseGeoJSON(data []byte) (orb.Geometry, error) {
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "parse GeoJSON")
	}
	return g.Geometry(), nil
}

// FormatWKT encodes g as WKT.
func FormatWKT(g orb.Geometry) string {
	return wkt.MarshalString(g)
}

// MarshalGeoJSON encodes g as a GeoJSON geometry object.
func MarshalGeoJSON(g orb.Geometry) ([]byte, error) {
	return geojson.NewGeometry(g).MarshalJSON()
}
