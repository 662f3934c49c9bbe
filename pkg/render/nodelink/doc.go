// Package nodelink renders finished layouts as Graphviz node-link diagrams.
//
// # Overview
//
// Where the svg package draws the bare grid, this package hands the layout to
// Graphviz for boxed labels and proper arrow heads. Graphviz does not lay the
// graph out again: every node is pinned to its grid position and rendered
// with the neato engine.
//
// # Usage
//
// Convert a grid to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, pass the SVG to render.ToPDF or render.ToPNG.
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include the grid coordinate
//   - ShowVirtual: virtual nodes are drawn as grey points
//   - Spacing: distance between grid cells in points
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
