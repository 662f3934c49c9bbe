package pathfind

import (
	"github.com/speich/dGraph/pkg/grid"
)

// Edge is a physical edge between two grid cells, From one layer above To.
type Edge struct {
	From grid.Coord `json:"from"`
	To   grid.Coord `json:"to"`
}

// SearchByTargets walks the grid breadth-first from start along target
// edges and calls visit once for every node reached, start excluded.
// Virtual nodes are visited like real ones.
func SearchByTargets(g *grid.Grid, start *grid.Node, visit func(n *grid.Node)) {
	walk(g, start, targets, func(_, next *grid.Node, first bool) {
		if first {
			visit(next)
		}
	})
}

// SearchBySources walks the grid breadth-first from start along source
// edges. visit is called once per distinct edge traversed, with the node
// being expanded and the source it points back to.
func SearchBySources(g *grid.Grid, start *grid.Node, visit func(n, source *grid.Node)) {
	walk(g, start, sources, func(n, src *grid.Node, _ bool) {
		visit(n, src)
	})
}

func targets(n *grid.Node) []grid.Coord { return n.Targets }
func sources(n *grid.Node) []grid.Coord { return n.Sources }

// walk runs a BFS over the neighbours returned by next. Each node is
// enqueued once and each distinct (node, neighbour) pair is reported once;
// first is true when the pair discovered the neighbour.
func walk(g *grid.Grid, start *grid.Node, next func(*grid.Node) []grid.Coord, visit func(n, nb *grid.Node, first bool)) {
	if g == nil || start == nil {
		return
	}
	queued := map[grid.Coord]bool{start.Coord(): true}
	seen := make(map[Edge]bool)
	q := NewQueue[*grid.Node](8)
	q.Push(start)

	for q.Len() > 0 {
		n, _ := q.Pop()
		for _, c := range next(n) {
			nb := g.At(c)
			if nb == nil {
				continue
			}
			e := Edge{From: n.Coord(), To: c}
			if seen[e] {
				continue
			}
			seen[e] = true
			first := !queued[c]
			if first {
				queued[c] = true
				q.Push(nb)
			}
			visit(n, nb, first)
		}
	}
}

// Reachable returns the real nodes reachable from start along target edges,
// in BFS order. Virtual nodes are passed through but not returned.
func Reachable(g *grid.Grid, start *grid.Node) []*grid.Node {
	var out []*grid.Node
	SearchByTargets(g, start, func(n *grid.Node) {
		if !n.Virtual {
			out = append(out, n)
		}
	})
	return out
}
