package cache

// ScopedKeyer wraps a Keyer with a prefix so several tools or deployments
// can share one backend without colliding.
//
// Example usage:
//
//	// Server entries live apart from CLI entries in a shared redis.
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "server:")
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

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(jobHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(jobHash, opts)
}

// ReportKey generates a prefixed report key.
func (k *ScopedKeyer) ReportKey(jobHash string) string {
	return k.prefix + k.inner.ReportKey(jobHash)
}
