// Package pipeline provides the document-to-markup pipeline for Pagesmith.
//
// This package implements the load → generate flow shared by the CLI and
// the HTTP server. By centralizing this logic, we ensure consistent
// behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Load: Read a document and rebuild the placement store, validating
//     regions, component types, and positions.
//  2. Generate: Produce static markup from the placed components,
//     grouped by region.
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    DocumentPath: "landing.json",
//	    Format:       "html",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := result.Markup
//
// Run individual stages:
//
//	// Load only
//	doc, store, err := runner.Load(ctx, opts)
//
//	// Generate with existing components
//	markup, err := runner.Generate(ctx, doc, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pagesmith/pagesmith/pkg/cache"
	"github.com/pagesmith/pagesmith/pkg/canvas"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultCanvasWidth is the default canvas width in pixels.
	DefaultCanvasWidth = canvas.DefaultCanvasWidth

	// DefaultCanvasHeight is the default canvas height in pixels.
	DefaultCanvasHeight = canvas.DefaultCanvasHeight
)

// FormatHTML is the only supported output format. The constant exists so
// callers, cache keys, and future formats share one spelling.
const FormatHTML = "html"

// DefaultFormat is the default output format.
const DefaultFormat = FormatHTML

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the markup pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of DocumentPath or Document is used;
	// a non-nil Document takes precedence.
	DocumentPath string           `json:"document_path,omitempty"`
	Document     *canvas.Document `json:"document,omitempty"`

	// Canvas geometry used to clamp loaded positions.
	CanvasWidth  float64 `json:"canvas_width,omitempty"`
	CanvasHeight float64 `json:"canvas_height,omitempty"`

	// Generate options
	Format  string `json:"format,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded document.
	Document canvas.Document

	// DocumentHash is the content hash of the document.
	DocumentHash string

	// Markup is the generated output.
	Markup string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ComponentCount int
	RegionCounts   map[canvas.Region]int
	LoadTime       time.Duration
	GenerateTime   time.Duration
	OutputBytes    int
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool // Whether markup came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be: html)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetGenerateDefaults()
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Document == nil && o.DocumentPath == "" {
		return fmt.Errorf("document or document_path is required")
	}

	// Geometry defaults
	if o.CanvasWidth == 0 {
		o.CanvasWidth = DefaultCanvasWidth
	}
	if o.CanvasHeight == 0 {
		o.CanvasHeight = DefaultCanvasHeight
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetGenerateDefaults sets default values for markup generation.
func (o *Options) SetGenerateDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForGenerate validates and sets defaults for generation.
func (o *Options) ValidateForGenerate() error {
	o.SetGenerateDefaults()
	return ValidateFormat(o.Format)
}

// CanvasRect returns the canvas geometry as a rectangle at the origin.
func (o *Options) CanvasRect() canvas.Rect {
	return canvas.Rect{Width: o.CanvasWidth, Height: o.CanvasHeight}
}

// MarkupKeyOpts returns cache key options for markup generation.
func (o *Options) MarkupKeyOpts() cache.MarkupKeyOpts {
	return cache.MarkupKeyOpts{
		CanvasWidth:  o.CanvasWidth,
		CanvasHeight: o.CanvasHeight,
		Format:       o.Format,
	}
}
