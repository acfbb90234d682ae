package cache

// MarkupKeyOpts are the generation options that affect markup output and
// therefore participate in the cache key.
type MarkupKeyOpts struct {
	CanvasWidth  float64
	CanvasHeight float64
	Format       string
}

// AssistKeyOpts identify an assist request for response caching.
type AssistKeyOpts struct {
	Endpoint string
	Prompt   string
}

// Keyer builds cache keys for the different entry kinds.
type Keyer interface {
	// HTTPKey generates a key for raw HTTP response caching.
	HTTPKey(namespace, key string) string

	// DocumentKey generates a key for a canvas document by name.
	DocumentKey(name string) string

	// MarkupKey generates a key for generated markup from a document
	// content hash and the options that shape the output.
	MarkupKey(documentHash string, opts MarkupKeyOpts) string

	// AssistKey generates a key for an assist response from the
	// component list hash and request options.
	AssistKey(componentsHash string, opts AssistKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a kind prefix plus a SHA-256
// hash of the identifying parts.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// DocumentKey generates a key for a canvas document.
func (DefaultKeyer) DocumentKey(name string) string {
	return hashKey("document", name)
}

// MarkupKey generates a key for generated markup.
func (DefaultKeyer) MarkupKey(documentHash string, opts MarkupKeyOpts) string {
	return hashKey("markup", documentHash, opts)
}

// AssistKey generates a key for an assist response.
func (DefaultKeyer) AssistKey(componentsHash string, opts AssistKeyOpts) string {
	return hashKey("assist", componentsHash, opts)
}
