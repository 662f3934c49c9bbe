package ordering

import (
	"github.com/speich/dGraph/pkg/dag"
)

// Orderer decides the left-to-right sequence of nodes in every layer.
// OrderLayers returns one slice of node IDs per layer; each node of the graph
// appears exactly once, in its own layer. Implementations must be
// deterministic: the same graph yields the same ordering.
type Orderer interface {
	OrderLayers(g *dag.DAG) [][]int
}

// Input keeps the insertion order: real nodes by their position in the node
// list, then virtual nodes in the order they were created.
type Input struct{}

// OrderLayers implements [Orderer].
func (Input) OrderLayers(g *dag.DAG) [][]int {
	orders := make([][]int, g.NumLayer())
	for l := range orders {
		orders[l] = g.NodesInLayer(l)
	}
	return orders
}

func cloneOrders(orders [][]int) [][]int {
	out := make([][]int, len(orders))
	for i, o := range orders {
		out[i] = append([]int(nil), o...)
	}
	return out
}
