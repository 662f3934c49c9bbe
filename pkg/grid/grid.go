package grid

import (
	"encoding/json"
	"fmt"
	"iter"
)

// Coord addresses one grid cell. It is encoded in JSON as a [column, layer]
// pair, matching the (x, y) order renderers expect.
type Coord struct {
	Column int
	Layer  int
}

// MarshalJSON encodes the coordinate as [column, layer].
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Column, c.Layer})
}

// UnmarshalJSON decodes a [column, layer] pair.
func (c *Coord) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coord: %w", err)
	}
	c.Column, c.Layer = pair[0], pair[1]
	return nil
}

// String returns the coordinate as "(column,layer)".
func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Column, c.Layer) }

// Node is one occupied grid cell: a real node from the caller's node list or
// a virtual node carrying a multi-layer edge through this layer.
//
// Targets and Sources hold the single-layer physical edges after virtual node
// insertion. They are mutually consistent: B's coordinate is in A.Targets
// exactly as often as A's coordinate is in B.Sources.
type Node struct {
	Label   string  `json:"label"`
	Layer   int     `json:"layer"`
	Column  int     `json:"column"`
	Virtual bool    `json:"virtual,omitempty"`
	Index   int     `json:"index"` // node list index, -1 for virtual nodes
	Edge    int     `json:"edge"`  // logical edge of a virtual node, -1 for real nodes
	Targets []Coord `json:"targets"`
	Sources []Coord `json:"sources"`

	// Attrs holds handles attached by collaborators (renderers, viewers).
	// The layout engine never reads it.
	Attrs map[string]any `json:"-"`
}

// Coord returns the node's grid coordinate.
func (n *Node) Coord() Coord { return Coord{Column: n.Column, Layer: n.Layer} }

// SetAttr stores a collaborator handle on the node.
func (n *Node) SetAttr(key string, v any) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]any)
	}
	n.Attrs[key] = v
}

// Chain maps one logical edge to the grid cells it occupies, source first.
type Chain struct {
	Edge int     `json:"edge"`
	From int     `json:"from"` // node list index of the source
	To   int     `json:"to"`   // node list index of the target
	Path []Coord `json:"path"`
}

// Grid is the finished layout: nodes indexed by [layer][column].
//
// Layers[l] has one entry per column up to the highest column used in layer
// l; unused columns (only possible in non-compacted layouts) are nil.
// A Grid is never modified by the engine after it has been published, but
// collaborators may attach handles through [Node.SetAttr].
type Grid struct {
	NumLayer int       `json:"numLayer"`
	Width    int       `json:"width"`
	Layers   [][]*Node `json:"layers"`
	Chains   []Chain   `json:"chains"`
}

// GraphWidth returns the maximum column count across all layers.
func (g *Grid) GraphWidth() int { return g.Width }

// At returns the node at c, or nil if the cell is empty or out of range.
func (g *Grid) At(c Coord) *Node {
	if c.Layer < 0 || c.Layer >= len(g.Layers) {
		return nil
	}
	row := g.Layers[c.Layer]
	if c.Column < 0 || c.Column >= len(row) {
		return nil
	}
	return row[c.Column]
}

// All iterates over the occupied cells, layer by layer, left to right.
func (g *Grid) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, row := range g.Layers {
			for _, n := range row {
				if n != nil && !yield(n) {
					return
				}
			}
		}
	}
}

// Layer returns the occupied cells of one layer, left to right.
func (g *Grid) Layer(layer int) []*Node {
	if layer < 0 || layer >= len(g.Layers) {
		return nil
	}
	var nodes []*Node
	for _, n := range g.Layers[layer] {
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Find returns the first real node with the given label, or nil.
func (g *Grid) Find(label string) *Node {
	for n := range g.All() {
		if !n.Virtual && n.Label == label {
			return n
		}
	}
	return nil
}

// Stats summarizes a grid.
type Stats struct {
	Nodes    int `json:"nodes"`
	Virtual  int `json:"virtual"`
	Edges    int `json:"edges"` // physical edges
	Chains   int `json:"chains"`
	Width    int `json:"width"`
	NumLayer int `json:"numLayer"`
}

// Stats counts nodes and edges of the grid.
func (g *Grid) Stats() Stats {
	s := Stats{Chains: len(g.Chains), Width: g.Width, NumLayer: g.NumLayer}
	for n := range g.All() {
		s.Nodes++
		if n.Virtual {
			s.Virtual++
		}
		s.Edges += len(n.Targets)
	}
	return s
}
