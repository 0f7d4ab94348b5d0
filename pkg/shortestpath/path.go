package shortestpath

import (
	"slices"

	"github.com/paulmach/orb"

	"github.com/matzehuels/offsetcurve/pkg/errors"
)

// path follows predecessors from t back to s and returns the coordinates in
// start-to-end order.
func (a *arena) path(s, t int) (orb.LineString, error) {
	var out orb.LineString
	for i := t; ; {
		out = append(out, a.coords[i])
		if i == s {
			break
		}
		p := a.predecessor[i]
		if p == noPredecessor {
			return nil, errors.New(errors.ErrCodeUnreachableTarget,
				"predecessor chain from %v breaks at %v before reaching %v", a.coords[t], a.coords[i], a.coords[s])
		}
		if len(out) > len(a.coords) {
			return nil, errors.New(errors.ErrCodeInternal, "predecessor chain from %v contains a cycle", a.coords[t])
		}
		i = p
	}
	slices.Reverse(out)
	return out, nil
}
