package cache

// ScopedKeyer wraps a Keyer with a prefix, isolating cache namespaces
// when several deployments share one Redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
// A nil inner keyer defaults to [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// PlanKey generates a prefixed plan key.
func (k *ScopedKeyer) PlanKey(specHash string) string {
	return k.prefix + k.inner.PlanKey(specHash)
}

// AnalysisKey generates a prefixed analysis key.
func (k *ScopedKeyer) AnalysisKey(specHash, model string) string {
	return k.prefix + k.inner.AnalysisKey(specHash, model)
}
