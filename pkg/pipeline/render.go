package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	dgerrors "github.com/speich/dGraph/pkg/errors"
	"github.com/speich/dGraph/pkg/grid"
	"github.com/speich/dGraph/pkg/observability"
	"github.com/speich/dGraph/pkg/pathfind"
	"github.com/speich/dGraph/pkg/render"
	"github.com/speich/dGraph/pkg/render/nodelink"
	"github.com/speich/dGraph/pkg/render/svg"
)

// Converters for pdf and png output. Tests replace them.
var (
	toPDF = render.ToPDF
	toPNG = render.ToPNG
)

// RenderGrid renders g in every format of opts.Formats. PDF and PNG are
// converted from the SVG output; without rsvg-convert they fail with
// UNSUPPORTED. Rendering sets SVG element IDs as node
// attributes, so g is modified.
func RenderGrid(ctx context.Context, g *grid.Grid, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, dgerrors.Wrap(dgerrors.ErrCodeInvalidInput, err, "render options")
	}

	svgOpts := []svg.Option{
		svg.WithGridSize(svg.GridSize{MeshWidth: opts.MeshWidth, MeshHeight: opts.MeshHeight}),
	}
	if opts.Invert {
		svgOpts = append(svgOpts, svg.WithInvert())
	}
	if opts.GridLabel != "" {
		svgOpts = append(svgOpts, svg.WithGridLabel(opts.GridLabel))
	}
	if opts.Highlight != "" {
		start := g.Find(opts.Highlight)
		if start == nil {
			return nil, dgerrors.New(dgerrors.ErrCodeNodeNotFound, "highlight node %q not found", opts.Highlight)
		}
		svgOpts = append(svgOpts, svg.WithHighlight(pathfind.NewHighlight(g, start)))
	}
	dotOpts := nodelink.Options{ShowVirtual: opts.ShowVirtual}

	var svgData []byte
	svgOnce := func() []byte {
		if svgData == nil {
			svgData = svg.Render(g, svgOpts...)
		}
		return svgData
	}

	hooks := observability.Layout()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		hooks.OnRenderStart(ctx, format)
		start := time.Now()

		var data []byte
		var err error
		switch format {
		case FormatSVG:
			data = svgOnce()
		case FormatDOT:
			data = []byte(nodelink.ToDOT(g, dotOpts))
		case FormatNodelink:
			data, err = nodelink.RenderSVG(nodelink.ToDOT(g, dotOpts))
		case FormatJSON:
			var buf bytes.Buffer
			err = grid.Write(&buf, g)
			data = buf.Bytes()
		case FormatPDF:
			data, err = toPDF(svgOnce())
		case FormatPNG:
			data, err = toPNG(svgOnce(), opts.PNGScale)
		default:
			err = fmt.Errorf("unsupported format %q", format)
		}

		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if errors.Is(err, render.ErrConverterMissing) {
			return nil, dgerrors.Wrap(dgerrors.ErrCodeUnsupported, err, "render %s", format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		opts.Logger.Debug("rendered", "format", format, "bytes", len(data))
		artifacts[format] = data
	}
	return artifacts, nil
}
