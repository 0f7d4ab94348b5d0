package io

import (
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb"

	"github.com/matzehuels/offsetcurve/pkg/geom"
)

// maxInputSize bounds the bytes read from a single input.
const maxInputSize = 64 << 20

// ReadLine decodes a WKT or GeoJSON line from r. ReadLine does not close r.
func ReadLine(r io.Reader) (orb.LineString, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(data) > maxInputSize {
		return nil, fmt.Errorf("input exceeds %d bytes", maxInputSize)
	}
	return geom.ParseLine(string(data))
}

// ImportLine reads the line stored in the file at path. A path of "-"
// reads standard input.
func ImportLine(path string) (orb.LineString, error) {
	if path == "-" {
		return ReadLine(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ls, err := ReadLine(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ls, nil
}
