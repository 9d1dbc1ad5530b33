package cache

// ScopedKeyer wraps a Keyer with a prefix so separate deployments (or
// tenants) sharing one Redis instance get isolated namespaces.
//
// Example usage:
//
//	// Deployment-specific keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "prod:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DatasetKey generates a prefixed key for parsed-dataset caching.
func (k *ScopedKeyer) DatasetKey(sourceHash string) string {
	return k.prefix + k.inner.DatasetKey(sourceHash)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(datasetHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
