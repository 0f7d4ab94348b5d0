package errors

import (
	"math"
	"strings"

	"github.com/paulmach/orb"
)

// ValidateDistance validates a signed offset distance.
// Zero produces no offset at all, and NaN or infinite values cannot be
// offset by.
func ValidateDistance(distance float64) error {
	if distance == 0 {
		return New(ErrCodeInvalidOffsetInput, "offset distance must be nonzero")
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return New(ErrCodeInvalidOffsetInput, "offset distance must be finite, got %v", distance)
	}
	return nil
}

// ValidateLine validates an input line for offsetting.
//
// Validation rules:
//   - At least two distinct points
//   - No NaN or infinite ordinates
func ValidateLine(ls orb.LineString) error {
	distinct := 0
	for i, p := range ls {
		if !finite(p[0]) || !finite(p[1]) {
			return New(ErrCodeInvalidOffsetInput, "point %d has a non-finite ordinate", i)
		}
		if i == 0 || p != ls[i-1] {
			distinct++
		}
	}
	if distinct < 2 {
		return New(ErrCodeInvalidOffsetInput, "line must have at least two distinct points, got %d", distinct)
	}
	return nil
}

// ValidateFormat checks that format is one of the allowed values.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(allowed, ", "))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
