// Package offset builds raw offset curves for lines.
//
// A raw offset curve runs parallel to its input at a constant perpendicular
// distance. It is assembled segment by segment: every input segment is
// translated along its normal, and consecutive translated segments are joined
// according to [Params.JoinStyle]. On the inside of a turn the two translated
// segments are trimmed to their crossing point when one exists; otherwise
// they are connected back through the input vertex, which leaves a small
// loop in the raw curve. Removing such loops is the job of the downstream
// noding and shortest-path stages, so the raw curve may self-intersect.
//
// # Usage
//
//	b := offset.NewBuilder(offset.DefaultParams())
//	raw := b.Curve(line, 5)
package offset

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/offsetcurve/pkg/errors"
)

// JoinStyle selects how two translated segments are connected on the
// outside of a turn.
type JoinStyle int

const (
	// JoinRound connects segments with a circular arc around the input vertex.
	JoinRound JoinStyle = iota
	// JoinMitre extends both segments to their crossing point, falling back
	// to a bevel when the mitre would exceed [Params.MitreLimit].
	JoinMitre
	// JoinBevel connects segment ends with a straight line.
	JoinBevel
)

// String returns the lowercase name of the join style.
func (j JoinStyle) String() string {
	switch j {
	case JoinRound:
		return "round"
	case JoinMitre:
		return "mitre"
	case JoinBevel:
		return "bevel"
	default:
		return fmt.Sprintf("JoinStyle(%d)", int(j))
	}
}

// ParseJoinStyle parses a join style name. The American spelling "miter" is
// accepted as well.
func ParseJoinStyle(s string) (JoinStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "round", "":
		return JoinRound, nil
	case "mitre", "miter":
		return JoinMitre, nil
	case "bevel":
		return JoinBevel, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidConfig, "unknown join style %q (must be round, mitre or bevel)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (j JoinStyle) MarshalText() ([]byte, error) {
	return []byte(j.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (j *JoinStyle) UnmarshalText(b []byte) error {
	v, err := ParseJoinStyle(string(b))
	if err != nil {
		return err
	}
	*j = v
	return nil
}

// Default buffer parameters.
const (
	DefaultQuadrantSegments = 8
	DefaultMitreLimit       = 5.0
	DefaultSimplifyFactor   = 0.01
)

// Params is the buffer configuration for raw offset generation and the
// simplification that follows it.
type Params struct {
	JoinStyle JoinStyle `json:"join_style"`

	// QuadrantSegments is the number of segments used to approximate a
	// quarter circle in round joins.
	QuadrantSegments int `json:"quadrant_segments"`

	// MitreLimit bounds the ratio of mitre length to offset distance.
	MitreLimit float64 `json:"mitre_limit"`

	// SimplifyFactor scales the absolute offset distance into the
	// simplification tolerance.
	SimplifyFactor float64 `json:"simplify_factor"`
}

// DefaultParams returns round joins with 8 quadrant segments, a mitre limit
// of 5 and a simplify factor of 0.01.
func DefaultParams() Params {
	return Params{
		JoinStyle:        JoinRound,
		QuadrantSegments: DefaultQuadrantSegments,
		MitreLimit:       DefaultMitreLimit,
		SimplifyFactor:   DefaultSimplifyFactor,
	}
}

// Validate reports the first invalid parameter as an INVALID_CONFIG error.
func (p Params) Validate() error {
	switch {
	case p.JoinStyle < JoinRound || p.JoinStyle > JoinBevel:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid join style %d", int(p.JoinStyle))
	case p.QuadrantSegments < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "quadrant segments must be at least 1, got %d", p.QuadrantSegments)
	case !(p.MitreLimit > 0) || math.IsInf(p.MitreLimit, 0):
		return errors.New(errors.ErrCodeInvalidConfig, "mitre limit must be positive and finite, got %v", p.MitreLimit)
	case !(p.SimplifyFactor >= 0) || math.IsInf(p.SimplifyFactor, 0):
		return errors.New(errors.ErrCodeInvalidConfig, "simplify factor must be non-negative and finite, got %v", p.SimplifyFactor)
	}
	return nil
}

// Tolerance returns the simplification tolerance for an offset distance.
func (p Params) Tolerance(distance float64) float64 {
	return math.Abs(distance) * p.SimplifyFactor
}
