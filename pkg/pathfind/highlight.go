package pathfind

import (
	"cmp"
	"encoding/json"
	"maps"
	"slices"

	"github.com/speich/dGraph/pkg/grid"
)

// CSS classes applied to highlighted elements.
const (
	ClassNode       = "nodeHighlighted"
	ClassTargetNode = "trgNodeHighlighted"
	ClassTargetEdge = "targetEdgeHighlighted"
	ClassSourceNode = "srcNodeHighlighted"
	ClassSourceEdge = "srcEdgeHighlighted"
)

// Highlight is the set of elements connected to a selected node: everything
// downstream through target edges and everything upstream through source
// edges. Virtual nodes never get a node class; edges through them do.
type Highlight struct {
	Selected    bool
	Start       grid.Coord
	TargetNodes map[grid.Coord]bool
	TargetEdges map[Edge]bool
	SourceNodes map[grid.Coord]bool
	SourceEdges map[Edge]bool
}

// NewHighlight collects the downstream and upstream paths of start.
// A nil start yields an empty highlight.
func NewHighlight(g *grid.Grid, start *grid.Node) *Highlight {
	h := &Highlight{
		TargetNodes: make(map[grid.Coord]bool),
		TargetEdges: make(map[Edge]bool),
		SourceNodes: make(map[grid.Coord]bool),
		SourceEdges: make(map[Edge]bool),
	}
	if g == nil || start == nil {
		return h
	}
	h.Selected, h.Start = true, start.Coord()

	markTargets := func(n *grid.Node) {
		for _, c := range n.Targets {
			h.TargetEdges[Edge{From: n.Coord(), To: c}] = true
			if t := g.At(c); t != nil && !t.Virtual {
				h.TargetNodes[c] = true
			}
		}
	}
	markTargets(start)
	SearchByTargets(g, start, markTargets)

	SearchBySources(g, start, func(n, src *grid.Node) {
		h.SourceEdges[Edge{From: src.Coord(), To: n.Coord()}] = true
		if !src.Virtual {
			h.SourceNodes[src.Coord()] = true
		}
	})
	return h
}

// NodeClasses returns the CSS classes for the node at c.
func (h *Highlight) NodeClasses(c grid.Coord) []string {
	var cls []string
	if h.Selected && c == h.Start {
		cls = append(cls, ClassNode)
	}
	if h.TargetNodes[c] {
		cls = append(cls, ClassTargetNode)
	}
	if h.SourceNodes[c] {
		cls = append(cls, ClassSourceNode)
	}
	return cls
}

// EdgeClasses returns the CSS classes for the physical edge e.
func (h *Highlight) EdgeClasses(e Edge) []string {
	var cls []string
	if h.TargetEdges[e] {
		cls = append(cls, ClassTargetEdge)
	}
	if h.SourceEdges[e] {
		cls = append(cls, ClassSourceEdge)
	}
	return cls
}

// Nodes returns the real nodes of the highlight, start first, then
// downstream and upstream nodes in grid order.
func (h *Highlight) Nodes(g *grid.Grid) []*grid.Node {
	var out []*grid.Node
	if !h.Selected {
		return nil
	}
	if n := g.At(h.Start); n != nil {
		out = append(out, n)
	}
	for n := range g.All() {
		c := n.Coord()
		if c != h.Start && (h.TargetNodes[c] || h.SourceNodes[c]) {
			out = append(out, n)
		}
	}
	return out
}

func compareCoord(a, b grid.Coord) int {
	return cmp.Or(cmp.Compare(a.Layer, b.Layer), cmp.Compare(a.Column, b.Column))
}

func compareEdge(a, b Edge) int {
	return cmp.Or(compareCoord(a.From, b.From), compareCoord(a.To, b.To))
}

// MarshalJSON encodes the highlight with its sets as sorted lists.
func (h *Highlight) MarshalJSON() ([]byte, error) {
	type wire struct {
		Start       *grid.Coord  `json:"start"`
		TargetNodes []grid.Coord `json:"targetNodes"`
		TargetEdges []Edge       `json:"targetEdges"`
		SourceNodes []grid.Coord `json:"sourceNodes"`
		SourceEdges []Edge       `json:"sourceEdges"`
	}
	w := wire{
		TargetNodes: slices.SortedFunc(maps.Keys(h.TargetNodes), compareCoord),
		TargetEdges: slices.SortedFunc(maps.Keys(h.TargetEdges), compareEdge),
		SourceNodes: slices.SortedFunc(maps.Keys(h.SourceNodes), compareCoord),
		SourceEdges: slices.SortedFunc(maps.Keys(h.SourceEdges), compareEdge),
	}
	if h.Selected {
		w.Start = &h.Start
	}
	return json.Marshal(w)
}
