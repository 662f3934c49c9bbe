// Package pipeline runs the load → layout → render sequence shared by the
// CLI and the HTTP server.
//
// # Stages
//
//  1. Load: read graph data from a file or fetch it from a URL
//  2. Layout: run the layered engine and produce a [grid.Grid]
//  3. Render: turn the grid into SVG, DOT, JSON, PDF or PNG
//
// Layout and render results are cached. The layout key is derived from the
// content hash of the graph data plus every option that changes the grid;
// artifact keys from the hash of the grid plus the render options. Cache
// failures are logged and treated as misses.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, data, pipeline.Options{
//	    NumLayer: 4,
//	    Formats:  []string{"svg", "json"},
//	})
//	svg := result.Artifacts["svg"]
//
// [grid.Grid]: github.com/speich/dGraph/pkg/grid
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/speich/dGraph/pkg/cache"
	"github.com/speich/dGraph/pkg/grid"
	"github.com/speich/dGraph/pkg/ordering"
	"github.com/speich/dGraph/pkg/render/svg"
)

// Ordering strategies.
const (
	OrderingBarycentric = "barycentric"
	OrderingInput       = "input"
	OrderingExhaustive  = "exhaustive"

	DefaultOrdering = OrderingBarycentric
)

// Output formats.
const (
	FormatSVG      = "svg"
	FormatDOT      = "dot"
	FormatNodelink = "nodelink"
	FormatJSON     = "json"
	FormatPDF      = "pdf"
	FormatPNG      = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatDOT:      true,
	FormatNodelink: true,
	FormatJSON:     true,
	FormatPDF:      true,
	FormatPNG:      true,
}

// ValidOrderings is the set of supported ordering strategies.
var ValidOrderings = map[string]bool{
	OrderingBarycentric: true,
	OrderingInput:       true,
	OrderingExhaustive:  true,
}

// Options configures a pipeline run. It is also the request body of the
// HTTP layout and render endpoints.
type Options struct {
	// Layout options
	NumLayer  int    `json:"numLayer"`
	Compacted bool   `json:"compacted,omitempty"`
	Ordering  string `json:"ordering,omitempty"`
	Passes    int    `json:"passes,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Invert      bool     `json:"invert,omitempty"`
	MeshWidth   int      `json:"meshWidth,omitempty"`
	MeshHeight  int      `json:"meshHeight,omitempty"`
	GridLabel   string   `json:"gridLabel,omitempty"` // layer label prefix, "layer" if empty
	Highlight   string   `json:"highlight,omitempty"`
	ShowVirtual bool     `json:"showVirtual,omitempty"`
	PNGScale    float64  `json:"pngScale,omitempty"`

	// Refresh bypasses cached layouts, artifacts and sources.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Grid      *grid.Grid
	GraphHash string
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains run statistics.
type Stats struct {
	grid.Stats
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, dot, nodelink, json, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOrdering checks that an ordering strategy is supported.
func ValidateOrdering(name string) error {
	if !ValidOrderings[name] {
		return fmt.Errorf("invalid ordering: %q (must be one of: barycentric, input, exhaustive)", name)
	}
	return nil
}

// SetLayoutDefaults fills unset layout options.
func (o *Options) SetLayoutDefaults() {
	if o.Ordering == "" {
		o.Ordering = DefaultOrdering
	}
	if o.Passes == 0 && o.Ordering != OrderingInput {
		o.Passes = ordering.DefaultPasses
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout applies layout defaults and validates them. The layer
// count itself is checked by the engine.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Passes < 0 {
		return fmt.Errorf("invalid passes: %d", o.Passes)
	}
	return ValidateOrdering(o.Ordering)
}

// SetRenderDefaults fills unset render options.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.MeshWidth == 0 {
		o.MeshWidth = svg.DefaultGridSize.MeshWidth
	}
	if o.MeshHeight == 0 {
		o.MeshHeight = svg.DefaultGridSize.MeshHeight
	}
	if o.PNGScale == 0 {
		o.PNGScale = 2
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender applies render defaults and validates them.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.MeshWidth < 0 || o.MeshHeight < 0 {
		return fmt.Errorf("invalid mesh size %dx%d", o.MeshWidth, o.MeshHeight)
	}
	if o.PNGScale < 0 {
		return fmt.Errorf("invalid png scale %g", o.PNGScale)
	}
	return ValidateFormats(o.Formats)
}

// Orderer returns the orderer selected by o.Ordering.
func (o *Options) Orderer() ordering.Orderer {
	switch o.Ordering {
	case OrderingInput:
		return ordering.Input{}
	case OrderingExhaustive:
		return ordering.Exhaustive{Passes: o.Passes}
	default:
		return ordering.Barycentric{Passes: o.Passes}
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		NumLayer:  o.NumLayer,
		Compacted: o.Compacted,
		Ordering:  o.Ordering,
		Passes:    o.Passes,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Invert:      o.Invert,
		MeshWidth:   o.MeshWidth,
		MeshHeight:  o.MeshHeight,
		GridLabel:   o.GridLabel,
		Highlight:   o.Highlight,
		ShowVirtual: o.ShowVirtual,
		Scale:       o.PNGScale,
	}
}
