package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/speich/dGraph/pkg/grid"
	"github.com/speich/dGraph/pkg/pathfind"
)

// Attribute keys written onto grid nodes. The values are the element IDs of
// the drawn node group and of the node's outgoing edges, in Targets order.
const (
	AttrNode  = "svg.node"
	AttrEdges = "svg.edges"
)

const (
	nodeRadius          = 5
	highlightNodeRadius = 8
	arrowID             = "arrow"
)

const styleCSS = `
    line { stroke: #ddd; stroke-width: 1; }
    .gridLabel { font: 10px sans-serif; fill: #999; }
    .edge { stroke: #555; stroke-width: 1.5; fill: none; }
    .node circle { fill: #fff; stroke: #333; stroke-width: 2; }
    .node text { font: 12px sans-serif; }
    .nodeHighlighted circle { fill: #f90; }
    .trgNodeHighlighted circle { stroke: #c00; }
    .srcNodeHighlighted circle { stroke: #06c; }
    .targetEdgeHighlighted { stroke: #c00; stroke-width: 2.5; }
    .srcEdgeHighlighted { stroke: #06c; stroke-width: 2.5; }`

// GridSize is the size of one grid cell in pixels.
type GridSize struct {
	MeshWidth  int `json:"meshWidth" toml:"mesh_width"`
	MeshHeight int `json:"meshHeight" toml:"mesh_height"`
}

// DefaultGridSize is used when no positive size is configured.
var DefaultGridSize = GridSize{MeshWidth: 100, MeshHeight: 100}

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	size      GridSize
	invert    bool
	label     string
	highlight *pathfind.Highlight
}

// WithGridSize sets the cell size. Non-positive dimensions keep the default.
func WithGridSize(s GridSize) Option {
	return func(r *renderer) {
		if s.MeshWidth > 0 {
			r.size.MeshWidth = s.MeshWidth
		}
		if s.MeshHeight > 0 {
			r.size.MeshHeight = s.MeshHeight
		}
	}
}

// WithInvert draws layer 0 at the bottom.
func WithInvert() Option { return func(r *renderer) { r.invert = true } }

// WithGridLabel sets the prefix of the layer labels ("layer" by default).
func WithGridLabel(label string) Option { return func(r *renderer) { r.label = label } }

// WithHighlight marks the nodes and edges of h with highlight classes.
func WithHighlight(h *pathfind.Highlight) Option {
	return func(r *renderer) { r.highlight = h }
}

// Render draws g as an SVG document.
//
// The canvas is (GraphWidth+1) cells wide and (NumLayer+1) cells high; the
// extra row and column keep labels off the border. Real nodes are drawn as
// circles with their label; virtual nodes are not drawn, their edges are.
// Edges ending in a real node carry an arrow head.
//
// Render records the element IDs it emits on every node under [AttrNode]
// (real nodes only) and [AttrEdges], so it must not run concurrently on the
// same grid.
func Render(g *grid.Grid, opts ...Option) []byte {
	r := renderer{size: DefaultGridSize, label: "layer"}
	for _, opt := range opts {
		opt(&r)
	}

	width := (g.GraphWidth() + 1) * r.size.MeshWidth
	height := (g.NumLayer + 1) * r.size.MeshHeight

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", styleCSS)
	renderDefs(&buf)
	buf.WriteString("  <g>\n")
	r.renderGrid(&buf, g, width, height)
	r.renderEdges(&buf, g)
	r.renderNodes(&buf, g)
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer) {
	// The arrow starts where the target circle ends.
	fmt.Fprintf(buf, `  <defs><marker id="%s" markerWidth="11" markerHeight="11" refX="%d" refY="5.5" orient="auto">`+
		`<polyline points="0,0 10,5 0,10 1,5"/></marker></defs>`+"\n", arrowID, 2*nodeRadius+11)
}

// x and y return the pixel position of a cell center.
func (r *renderer) x(c grid.Coord) int { return (c.Column + 1) * r.size.MeshWidth }

func (r *renderer) y(c grid.Coord, numLayer int) int {
	if r.invert {
		return (numLayer - c.Layer) * r.size.MeshHeight
	}
	return (c.Layer + 1) * r.size.MeshHeight
}

func (r *renderer) renderGrid(buf *bytes.Buffer, g *grid.Grid, width, height int) {
	rows := g.NumLayer + 1
	for i := 1; i < rows; i++ {
		y := i * r.size.MeshHeight
		fmt.Fprintf(buf, `    <line x1="0" y1="%d" x2="%d" y2="%d"/>`+"\n", y, width, y)
		level := i - 1
		if r.invert {
			level = rows - i - 1
		}
		fmt.Fprintf(buf, `    <text class="gridLabel" x="0" y="%d">%s %d</text>`+"\n", y+3, escape(r.label), level)
	}
	for i := 1; i <= g.GraphWidth(); i++ {
		x := i * r.size.MeshWidth
		fmt.Fprintf(buf, `    <line x1="%d" y1="0" x2="%d" y2="%d"/>`+"\n", x, x, height)
	}
}

func (r *renderer) renderEdges(buf *bytes.Buffer, g *grid.Grid) {
	for n := range g.All() {
		ids := make([]string, len(n.Targets))
		for z, tc := range n.Targets {
			target := g.At(tc)
			if target == nil {
				continue
			}
			ids[z] = fmt.Sprintf("edge-%d-%d-%d", n.Layer, n.Column, z)
			classes := []string{"edge"}
			if r.highlight != nil {
				classes = append(classes, r.highlight.EdgeClasses(pathfind.Edge{From: n.Coord(), To: tc})...)
			}
			marker := ""
			if !target.Virtual {
				marker = fmt.Sprintf(` marker-end="url(#%s)"`, arrowID)
			}
			fmt.Fprintf(buf, `    <polyline id="%s" class="%s" points="%d,%d %d,%d"%s/>`+"\n",
				ids[z], strings.Join(classes, " "),
				r.x(n.Coord()), r.y(n.Coord(), g.NumLayer), r.x(tc), r.y(tc, g.NumLayer), marker)
		}
		n.SetAttr(AttrEdges, ids)
	}
}

func (r *renderer) renderNodes(buf *bytes.Buffer, g *grid.Grid) {
	dist := 1.5
	if r.invert {
		dist = -1.5
	}
	for n := range g.All() {
		if n.Virtual {
			continue
		}
		id := fmt.Sprintf("node-%d-%d", n.Layer, n.Column)
		classes := []string{"node"}
		radius := nodeRadius
		if r.highlight != nil {
			hc := r.highlight.NodeClasses(n.Coord())
			classes = append(classes, hc...)
			if len(hc) > 0 && hc[0] == pathfind.ClassNode {
				radius = highlightNodeRadius
			}
		}
		fmt.Fprintf(buf, `    <g id="%s" class="%s" transform="translate(%d,%d)">`,
			id, strings.Join(classes, " "), r.x(n.Coord()), r.y(n.Coord(), g.NumLayer))
		fmt.Fprintf(buf, `<circle r="%d"/><text text-anchor="middle" x="0"><tspan x="0" y="%gem">%s</tspan></text></g>`+"\n",
			radius, dist, escape(n.Label))
		n.SetAttr(AttrNode, id)
	}
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
