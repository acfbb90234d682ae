package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pagesmith/pagesmith/pkg/cache"
	"github.com/pagesmith/pagesmith/pkg/canvas"
	"github.com/pagesmith/pagesmith/pkg/markup"
	"github.com/pagesmith/pagesmith/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → generate pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	doc, store, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Document = doc
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.ComponentCount = store.Len()
	result.Stats.RegionCounts = make(map[canvas.Region]int, len(canvas.Regions()))
	for _, region := range canvas.Regions() {
		result.Stats.RegionCounts[region] = store.CountIn(region)
	}

	// Compute document hash for cache keys and API responses
	if docData, err := canvas.MarshalDocument(doc); err == nil {
		result.DocumentHash = cache.Hash(docData)
	}

	r.Logger.Info("loaded document",
		"name", doc.Name,
		"components", store.Len(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Generate
	genStart := time.Now()
	out, genHit, err := r.GenerateWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Markup = out
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.OutputBytes = len(out)
	result.CacheInfo.GenerateHit = genHit

	r.Logger.Info("generated markup",
		"format", opts.Format,
		"bytes", len(out),
		"cached", genHit,
		"duration", result.Stats.GenerateTime)

	return result, nil
}

// Load reads the document and rebuilds a placement store from it,
// validating regions and component identity and clamping positions to
// the configured canvas.
func (r *Runner) Load(ctx context.Context, opts Options) (canvas.Document, *canvas.Store, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return canvas.Document{}, nil, err
	}
	r.applyLogger(&opts)

	var doc canvas.Document
	if opts.Document != nil {
		doc = *opts.Document
	} else {
		loaded, err := canvas.ReadDocumentFile(opts.DocumentPath)
		if err != nil {
			return canvas.Document{}, nil, err
		}
		doc = loaded
	}

	store, err := doc.ToStore()
	if err != nil {
		return canvas.Document{}, nil, err
	}

	// Re-clamp against the configured geometry; the document may have
	// been produced on a larger canvas.
	rect := opts.CanvasRect()
	for _, c := range store.Components() {
		store.UpdatePosition(c.ID, c.Position, rect)
	}
	doc.Canvas = rect

	return doc, store, nil
}

// GenerateWithCacheInfo generates markup with caching and returns cache
// hit info. An empty document returns [markup.ErrEmptyCanvas].
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, doc canvas.Document, opts Options) (string, bool, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return "", false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from document content
	docData, err := canvas.MarshalDocument(doc)
	if err != nil {
		return "", false, fmt.Errorf("serialize document for cache key: %w", err)
	}
	cacheKey := r.Keyer.MarkupKey(cache.Hash(docData), opts.MarkupKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "markup")
			return string(data), true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "markup")
	}

	store, err := doc.ToStore()
	if err != nil {
		return "", false, err
	}
	components := store.Components()

	start := time.Now()
	observability.Generate().OnGenerateStart(ctx, len(components))
	out, err := markup.Generate(components)
	observability.Generate().OnGenerateComplete(ctx, len(components), len(out), time.Since(start), err)
	if err != nil {
		return "", false, err
	}

	// Cache the result
	_ = r.Cache.Set(ctx, cacheKey, []byte(out), cache.TTLMarkup)
	observability.Cache().OnCacheSet(ctx, "markup", len(out))

	return out, false, nil
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, doc canvas.Document, opts Options) (string, error) {
	out, _, err := r.GenerateWithCacheInfo(ctx, doc, opts)
	return out, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
