// Package io reads input lines and writes offset-curve artifacts.
//
// # Input
//
// A line is read as WKT or GeoJSON; the format is detected from the first
// non-space character:
//
//	LINESTRING (0 10, 125 10, 75 0, 200 0)
//
//	{"type": "LineString", "coordinates": [[0, 10], [125, 10], [75, 0], [200, 0]]}
//
// A MULTILINESTRING with a single part is accepted as that part. Any other
// geometry is rejected with INVALID_GEOMETRY.
//
// # Output
//
// [WriteCurve] writes a resolved curve as WKT or GeoJSON. [ExportArtifacts]
// writes rendered artifacts next to each other, one file per format, named
// after a common base path.
package io
