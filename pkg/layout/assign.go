package layout

import (
	"github.com/speich/dGraph/pkg/dag"
	"github.com/speich/dGraph/pkg/dag/transform"
	"github.com/speich/dGraph/pkg/grid"
)

// Options controls column placement.
type Options struct {
	// Compacted places every node at its position in the layer order, with
	// no gaps.
	Compacted bool

	// MaxPerLayer bounds the gap a node may leave after its left neighbour:
	// at most MaxPerLayer-1 empty columns. Ignored when Compacted is set.
	// Must be positive otherwise; values below 1 are treated as 1.
	MaxPerLayer int
}

// Assign places the ordered layers of g on a grid.
//
// The frame width W is the node count of the widest layer. In compacted mode
// a node's column is its position in orders. Otherwise layers are placed top
// to bottom and each node moves toward the rounded-down mean column of its
// parents (its packed position if it has none), clamped so that:
//
//   - columns increase strictly along the layer order
//   - the remaining nodes of the layer still fit left of W
//   - at most MaxPerLayer-1 columns stay empty before the node
//
// The widest layer therefore has no gaps, every column is below W, and
// [grid.Grid.GraphWidth] equals W.
//
// Targets and Sources of each grid node follow g's adjacency order. chains
// are translated into coordinate paths on the returned grid.
func Assign(g *dag.DAG, orders [][]int, chains []transform.Chain, opts Options) *grid.Grid {
	width := g.MaxLayerSize()
	capacity := opts.MaxPerLayer
	if opts.Compacted || capacity < 1 {
		capacity = 1
	}

	columns := make(map[int]int, g.NodeCount())
	for l, order := range orders {
		prev := -1
		k := len(order)
		for i, id := range order {
			lo, hi := prev+1, min(width-(k-i), prev+capacity)
			col := clamp(desiredColumn(g, id, i, l, columns), lo, hi)
			columns[id] = col
			prev = col
		}
	}

	out := &grid.Grid{
		NumLayer: g.NumLayer(),
		Width:    width,
		Layers:   make([][]*grid.Node, g.NumLayer()),
	}
	coord := func(id int) grid.Coord {
		n, _ := g.Node(id)
		return grid.Coord{Column: columns[id], Layer: n.Layer}
	}

	for l, order := range orders {
		if len(order) == 0 {
			continue
		}
		row := make([]*grid.Node, columns[order[len(order)-1]]+1)
		for _, id := range order {
			n, _ := g.Node(id)
			cell := &grid.Node{
				Label:   n.Label,
				Layer:   n.Layer,
				Column:  columns[id],
				Virtual: n.IsVirtual(),
				Index:   n.Index,
				Edge:    n.Edge,
				Targets: make([]grid.Coord, 0, len(g.Children(id))),
				Sources: make([]grid.Coord, 0, len(g.Parents(id))),
			}
			for _, c := range g.Children(id) {
				cell.Targets = append(cell.Targets, coord(c))
			}
			for _, p := range g.Parents(id) {
				cell.Sources = append(cell.Sources, coord(p))
			}
			row[cell.Column] = cell
		}
		out.Layers[l] = row
	}

	out.Chains = make([]grid.Chain, 0, len(chains))
	for _, c := range chains {
		path := make([]grid.Coord, 0, c.Span()+1)
		for _, id := range c.Path() {
			path = append(path, coord(id))
		}
		from, _ := g.Node(c.From)
		to, _ := g.Node(c.To)
		out.Chains = append(out.Chains, grid.Chain{Edge: c.Edge, From: from.Index, To: to.Index, Path: path})
	}
	return out
}

// desiredColumn returns the floor of the mean column of id's parents in the
// layer above, or pos if it has none placed there.
func desiredColumn(g *dag.DAG, id, pos, layer int, columns map[int]int) int {
	if layer == 0 {
		return pos
	}
	sum, n := 0, 0
	for _, p := range g.Parents(id) {
		if c, ok := columns[p]; ok {
			sum += c
			n++
		}
	}
	if n == 0 {
		return pos
	}
	return sum / n
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
