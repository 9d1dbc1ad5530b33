// Package pipeline provides the core visualization pipeline for Mosaic.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse a weighted dataset from a file or HTTP(S) URL (JSON, CSV, TOML)
//  2. Layout: Compute cell positions with the squarified treemap algorithm
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Path:    "usage.json",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	d, err := runner.Load(ctx, opts)
//
//	// Layout with existing dataset
//	layout, err := runner.ComputeLayout(ctx, d, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/dataset"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/mosaic"
)

// Default values shared by CLI and API.
const (
	// DefaultWidth is the default frame width in user units.
	DefaultWidth = 800

	// DefaultHeight is the default frame height in user units.
	DefaultHeight = 600

	// DefaultScale is the default PNG scale factor (2x for high-DPI displays).
	DefaultScale = 2.0
)

// DefaultVizType is the default visualization type.
const DefaultVizType = mosaic.VizTypeTreemap

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	mosaic.VizTypeTreemap:  true,
	mosaic.VizTypeNodelink: true,
}

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Path   string `json:"path,omitempty"`
	Format string `json:"format,omitempty"` // overrides extension detection
	// Dataset bypasses file loading entirely (used by the HTTP API, which
	// receives datasets in request bodies).
	Dataset *dataset.Dataset `json:"-"`
	Refresh bool             `json:"refresh,omitempty"`

	// Layout options
	VizType string `json:"viz_type,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Inset   int    `json:"inset,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	ShowLabels bool     `json:"show_labels,omitempty"`
	ShowValues bool     `json:"show_values,omitempty"`
	Background string   `json:"background,omitempty"`
	Scale      float64  `json:"scale,omitempty"` // PNG only

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Dataset is the loaded input data.
	Dataset *dataset.Dataset

	// DatasetHash is the content hash of the dataset.
	DatasetHash string

	// Layout contains the computed cell positions (or DOT for nodelink).
	Layout mosaic.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int
	CellCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the parsed dataset came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
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

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType,
			"invalid viz_type: %q (must be one of: treemap, nodelink)", vizType)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Path == "" && o.Dataset == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "path or dataset is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"frame dimensions must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Inset < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "inset must not be negative")
	}
	return ValidateVizType(o.VizType)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// IsTreemap returns true if this is a treemap visualization.
func (o *Options) IsTreemap() bool {
	return o.VizType == "" || o.VizType == mosaic.VizTypeTreemap
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == mosaic.VizTypeNodelink
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		VizType: o.VizType,
		Width:   o.Width,
		Height:  o.Height,
		Inset:   o.Inset,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		ShowLabels: o.ShowLabels,
		ShowValues: o.ShowValues,
	}
}
