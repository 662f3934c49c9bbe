package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/speich/dGraph/pkg/grid"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the grid coordinate in node labels.
	Detailed bool

	// ShowVirtual draws virtual nodes as small dashed points. When false
	// they are still positioned but rendered invisible, so edges bend
	// through them.
	ShowVirtual bool

	// Spacing is the distance between grid cells in points (72 per inch).
	// Zero means 100.
	Spacing float64
}

// ToDOT converts a grid to Graphviz DOT format with every node pinned to its
// grid position. The result is meant for the neato engine, which honours
// pinned positions; [RenderSVG] uses it.
func ToDOT(g *grid.Grid, opts Options) string {
	spacing := opts.Spacing
	if spacing <= 0 {
		spacing = 100
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("\n")

	for n := range g.All() {
		// Graphviz y grows upward; layer 0 goes on top.
		x := float64(n.Column+1) * spacing
		y := float64(g.NumLayer-n.Layer) * spacing
		attrs := fmtAttrs(n, opts)
		attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", x, y))
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n.Coord()), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for n := range g.All() {
		for _, tc := range n.Targets {
			target := g.At(tc)
			if target == nil {
				continue
			}
			arrow := ""
			if target.Virtual {
				arrow = " [arrowhead=none]"
			}
			fmt.Fprintf(&buf, "  %q -> %q%s;\n", nodeID(n.Coord()), nodeID(tc), arrow)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(c grid.Coord) string {
	return "n" + strconv.Itoa(c.Layer) + "_" + strconv.Itoa(c.Column)
}

func fmtLabel(n *grid.Node, detailed bool) string {
	if !detailed {
		return n.Label
	}
	return fmt.Sprintf("%s\nlayer: %d, column: %d", n.Label, n.Layer, n.Column)
}

func fmtAttrs(n *grid.Node, opts Options) []string {
	if !n.Virtual {
		return []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))}
	}
	attrs := []string{`label=""`, "shape=point", "width=0.05"}
	if opts.ShowVirtual {
		attrs = append(attrs, "style=dashed", "color=grey")
	} else {
		attrs = append(attrs, "style=invis")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with render.ToPDF or render.ToPNG.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	gv.SetLayout(graphviz.NEATO)
	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
