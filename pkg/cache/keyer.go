package cache

// CurveKeyOpts holds every setting that changes a resolved curve.
type CurveKeyOpts struct {
	Distance         float64 `json:"distance"`
	JoinStyle        string  `json:"join_style"`
	QuadrantSegments int     `json:"quadrant_segments"`
	MitreLimit       float64 `json:"mitre_limit"`
	SimplifyFactor   float64 `json:"simplify_factor"`
	Strategy         string  `json:"strategy"`
}

// Keyer derives cache keys.
type Keyer interface {
	// CurveKey returns the key for the resolved curve of the input whose
	// content hash is inputHash.
	CurveKey(inputHash string, opts CurveKeyOpts) string
}

// DefaultKeyer builds keys of the form "curve:<hash>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// CurveKey implements [Keyer].
func (DefaultKeyer) CurveKey(inputHash string, opts CurveKeyOpts) string {
	return hashKey("curve", inputHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer, giving separate
// namespaces to callers that share one backend (for example several API
// deployments on one Redis).
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a keyer that prepends prefix to the keys of inner.
// A nil inner keyer means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// CurveKey implements [Keyer].
func (k *ScopedKeyer) CurveKey(inputHash string, opts CurveKeyOpts) string {
	return k.prefix + k.inner.CurveKey(inputHash, opts)
}
