// Package pipeline provides the core visualization pipeline for vocamap.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of two computed stages:
//
//  1. Layout: Compute the relationship diagram for a snapshot and selection
//  2. Render: Generate output in various formats (JSON, DOT, SVG, PNG, PDF)
//
// Loading the snapshot is the caller's job - the CLI reads a file, the
// server reads its store - so the pipeline itself stays free of I/O
// concerns beyond the cache.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    SelectedClass: "http://example.org/Finding",
//	    Formats:       []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, snapshot, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vocamap/vocamap/pkg/cache"
	"github.com/vocamap/vocamap/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// Style constants for visual styles.
const (
	// StylePlain renders nodes with their labels only.
	StylePlain = "plain"

	// StyleZones annotates every node with its zone classification.
	StyleZones = "zones"
)

// DefaultStyle is the default visual style.
const DefaultStyle = StylePlain

// DefaultPNGScale is the raster scale factor for PNG output.
const DefaultPNGScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	StylePlain: true,
	StyleZones: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	SelectedClass string         `json:"selected_class,omitempty"`
	Geometry      *layout.Config `json:"geometry,omitempty"` // nil means layout.DefaultConfig()

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`

	// Refresh bypasses the cache and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Record is the computed layout.
	Record layout.Record

	// SnapshotHash is the content hash of the input snapshot.
	SnapshotHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings are non-fatal snapshot validation findings.
	Warnings []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return fmt.Errorf("invalid style: %q (must be one of: plain, zones)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// Config returns the layout geometry, falling back to the defaults.
func (o *Options) Config() layout.Config {
	if o.Geometry != nil {
		return *o.Geometry
	}
	return layout.DefaultConfig()
}

// ShowZones returns true if nodes should be annotated with their zones.
func (o *Options) ShowZones() bool {
	return o.Style == StyleZones
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		SelectedClass: o.SelectedClass,
		Geometry:      o.Config(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
	}
}
