// Package render provides output formats for finished layouts.
//
// # Overview
//
// The layout engine produces a [grid.Grid]; the subpackages turn it into
// something to look at:
//
//   - [svg]: the grid drawn directly as SVG, with path highlighting
//   - [nodelink]: a Graphviz node-link diagram with nodes pinned to the grid
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both renderers use them.
//
//	out := svg.Render(g)
//	pdf, err := render.ToPDF(out)
//	png, err := render.ToPNG(out, 2.0)  // 2x scale
//
// [grid.Grid]: github.com/speich/dGraph/pkg/grid
// [svg]: github.com/speich/dGraph/pkg/render/svg
// [nodelink]: github.com/speich/dGraph/pkg/render/nodelink
package render
