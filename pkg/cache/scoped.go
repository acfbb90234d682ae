package cache

// ScopedKeyer wraps a Keyer with a prefix for per-session isolation.
// The server uses this so concurrent editing sessions never share cache
// entries even when their documents hash identically.
//
// Example usage:
//
//	// Session-specific keys
//	sessionKeyer := NewScopedKeyer(NewDefaultKeyer(), "session:abc123:")
//
//	// Global keys for the CLI
//	globalKeyer := NewDefaultKeyer()
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

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// DocumentKey generates a prefixed key for a canvas document.
func (k *ScopedKeyer) DocumentKey(name string) string {
	return k.prefix + k.inner.DocumentKey(name)
}

// MarkupKey generates a prefixed key for generated markup.
func (k *ScopedKeyer) MarkupKey(documentHash string, opts MarkupKeyOpts) string {
	return k.prefix + k.inner.MarkupKey(documentHash, opts)
}

// AssistKey generates a prefixed key for an assist response.
func (k *ScopedKeyer) AssistKey(componentsHash string, opts AssistKeyOpts) string {
	return k.prefix + k.inner.AssistKey(componentsHash, opts)
}
