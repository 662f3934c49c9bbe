package transform

import (
	"fmt"

	"github.com/speich/dGraph/pkg/dag"
)

// Chain is the physical routing of one logical edge after subdivision: the
// source node, the virtual nodes in layer order, and the target node. A chain
// for an edge spanning k layers has k-1 virtual nodes and k physical edges.
type Chain struct {
	Edge    int   // Logical edge index (position in the pre-subdivision edge list)
	From    int   // Source node ID
	To      int   // Target node ID
	Virtual []int // Virtual node IDs, top to bottom
}

// Path returns the node IDs of the chain from source to target.
func (c Chain) Path() []int {
	path := make([]int, 0, len(c.Virtual)+2)
	path = append(path, c.From)
	path = append(path, c.Virtual...)
	return append(path, c.To)
}

// Span returns the number of physical edges in the chain.
func (c Chain) Span() int { return len(c.Virtual) + 1 }

// Subdivide breaks edges that span multiple layers into sequences of
// single-layer edges connected by virtual nodes, and returns one [Chain] per
// logical edge in edge order.
//
// Subdivide ensures every edge in the graph connects nodes in consecutive
// layers (parent.Layer + 1 == child.Layer). For example:
//
//	Before: Rubecula (layer 0) → Turdus (layer 3)  [spans 3 layers]
//	After:  Rubecula → v1 → v2 → Turdus            [3 single-layer edges]
//
// Each virtual node belongs to exactly one logical edge (recorded in
// [dag.Node.Edge]); two long edges crossing the same layer get two distinct
// virtual nodes. The virtual nodes take the place of the original target in
// the source's adjacency list, so adjacency order is preserved.
//
// Subdivide must run on a graph built by [dag.FromData], whose edges all
// point strictly downward. It returns an error if an edge does not.
//
// Time complexity is O(E·L) where E is the number of logical edges and L the
// layer count.
func Subdivide(g *dag.DAG) ([]Chain, error) {
	logical := g.Edges()
	chains := make([]Chain, 0, len(logical))

	for i, e := range logical {
		src, _ := g.Node(e.From)
		dst, _ := g.Node(e.To)
		if dst.Layer <= src.Layer {
			return nil, fmt.Errorf("edge %d->%d: %w", e.From, e.To, dag.ErrReverseEdge)
		}

		chain := Chain{Edge: i, From: src.ID, To: dst.ID}
		prev := src.ID
		for layer := src.Layer + 1; layer < dst.Layer; layer++ {
			id, err := g.AddNode(dag.Node{Layer: layer, Kind: dag.NodeKindVirtual, Index: -1, Edge: i})
			if err != nil {
				return nil, fmt.Errorf("edge %d->%d: add virtual node: %w", e.From, e.To, err)
			}
			if err := g.SplitEdge(prev, dst.ID, id); err != nil {
				return nil, fmt.Errorf("edge %d->%d: %w", e.From, e.To, err)
			}
			chain.Virtual = append(chain.Virtual, id)
			prev = id
		}
		chains = append(chains, chain)
	}
	return chains, nil
}
