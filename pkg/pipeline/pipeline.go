// Package pipeline runs the load → layout → render pipeline for crawl jobs.
//
// The CLI and the HTTP API both go through this package so that caching,
// validation and fallback behavior are identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Fetch the crawl graph of a job from a [source.Source]
//  2. Layout: Classify edges, compute positions and build the descriptor
//  3. Render: Produce SVG, PNG, DOT or JSON from the layout
//
// Each stage is cached through [cache.Cache] and can run on its own.
//
// # Usage
//
//	runner := pipeline.NewRunner(src, c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    JobID:   "job-42",
//	    Kind:    "circular",
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	g, err := runner.Load(ctx, opts)
//	l, err := runner.GenerateLayout(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
//
// For a live visualization of a running crawl, a [View] keeps the last good
// layout of one job and marks it stale when a refresh fails.
//
// [source.Source]: github.com/matzehuels/crawlviz/pkg/source.Source
// [cache.Cache]: github.com/matzehuels/crawlviz/pkg/cache.Cache
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/crawlviz/pkg/cache"
	"github.com/matzehuels/crawlviz/pkg/crawl"
	errs "github.com/matzehuels/crawlviz/pkg/errors"
	"github.com/matzehuels/crawlviz/pkg/graph"
	"github.com/matzehuels/crawlviz/pkg/layout"
	"github.com/matzehuels/crawlviz/pkg/render"
	"github.com/matzehuels/crawlviz/pkg/render/nodelink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultKind is the layout kind used when none is requested.
const DefaultKind = string(layout.DefaultKind)

// DefaultFormat is rendered when no formats are requested.
const DefaultFormat = string(render.FormatSVG)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	string(render.FormatSVG):  true,
	string(render.FormatPNG):  true,
	string(render.FormatDOT):  true,
	string(render.FormatJSON): true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	JobID   string `json:"job_id"`
	Refresh bool   `json:"refresh,omitempty"` // bypass the graph cache

	// Layout options. An unknown kind is not an error: the grid fallback
	// is applied and recorded in Layout.Requested.
	Kind              string  `json:"kind,omitempty"`
	HorizontalSpacing float64 `json:"hspace,omitempty"`
	VerticalSpacing   float64 `json:"vspace,omitempty"`
	BaseRadius        float64 `json:"base_radius,omitempty"`
	DepthIncrement    float64 `json:"depth_increment,omitempty"`
	RingSpacing       float64 `json:"ring_spacing,omitempty"`
	CellSize          float64 `json:"cell_size,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	EdgeLabels bool     `json:"edge_labels,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Graph     *crawl.Graph
	GraphHash string
	Layout    graph.Layout
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, dot, json)", format)
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

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the job id.
func (o *Options) ValidateForLoad() error {
	if err := errs.ValidateJobID(o.JobID); err != nil {
		return err
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Kind == "" {
		o.Kind = DefaultKind
	}
	o.setLogger()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKind resolves the requested kind. ok is false when the fallback
// was substituted for an unknown kind.
func (o *Options) LayoutKind() (kind layout.Kind, ok bool) {
	return layout.ParseKind(o.Kind)
}

// LayoutOptions returns the spacing overrides as layout options.
// Zero values keep the defaults.
func (o *Options) LayoutOptions() []layout.Option {
	return []layout.Option{layout.WithOptions(layout.Options{
		HorizontalSpacing: o.HorizontalSpacing,
		VerticalSpacing:   o.VerticalSpacing,
		BaseRadius:        o.BaseRadius,
		DepthIncrement:    o.DepthIncrement,
		RingSpacing:       o.RingSpacing,
		CellSize:          o.CellSize,
	})}
}

// RenderOptions returns the drawing options.
func (o *Options) RenderOptions() nodelink.Options {
	return nodelink.Options{Detailed: o.Detailed, EdgeLabels: o.EdgeLabels}
}

// LayoutKeyOpts returns cache key options for layout computation.
// The key uses the resolved kind so unknown kinds share the fallback entry.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	kind, _ := o.LayoutKind()
	return cache.LayoutKeyOpts{
		Kind:              string(kind),
		HorizontalSpacing: o.HorizontalSpacing,
		VerticalSpacing:   o.VerticalSpacing,
		BaseRadius:        o.BaseRadius,
		DepthIncrement:    o.DepthIncrement,
		RingSpacing:       o.RingSpacing,
		CellSize:          o.CellSize,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		EdgeLabels: o.EdgeLabels,
		Detailed:   o.Detailed,
	}
}
