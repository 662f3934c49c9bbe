package ordering

import (
	"slices"

	"github.com/speich/dGraph/pkg/dag"
)

// DefaultPasses is the sweep count used when Barycentric.Passes is zero.
const DefaultPasses = 8

// Barycentric reduces edge crossings with the barycenter heuristic.
//
// Starting from the [Input] ordering, each pass sweeps down (sorting every
// layer by the mean position of its parents in the layer above) and then up
// (sorting by the mean position of its children in the layer below). Nodes
// without neighbours on the fixed side keep their current position as key,
// and ties keep the current relative order. After every sweep, adjacent nodes
// are swapped while a swap strictly reduces crossings.
//
// The ordering with the fewest crossings seen is returned; on ties the
// earliest one wins, so a graph without crossings keeps its input order.
type Barycentric struct {
	Passes int
}

// OrderLayers implements [Orderer].
func (b Barycentric) OrderLayers(g *dag.DAG) [][]int {
	orders := Input{}.OrderLayers(g)
	best := cloneOrders(orders)
	bestScore := dag.CountCrossings(g, orders)
	if bestScore == 0 || len(orders) < 2 {
		return best
	}

	passes := b.Passes
	if passes <= 0 {
		passes = DefaultPasses
	}

	keep := func() bool {
		score := dag.CountCrossings(g, orders)
		if score < bestScore {
			best, bestScore = cloneOrders(orders), score
		}
		return bestScore == 0
	}

	for range passes {
		for l := 1; l < len(orders); l++ {
			sortByBarycenter(g, orders[l], dag.PosMap(orders[l-1]), true)
		}
		transpose(g, orders)
		if keep() {
			break
		}
		for l := len(orders) - 2; l >= 0; l-- {
			sortByBarycenter(g, orders[l], dag.PosMap(orders[l+1]), false)
		}
		transpose(g, orders)
		if keep() {
			break
		}
	}
	return best
}

// sortByBarycenter reorders layer in place by the mean position of each
// node's neighbours in the fixed adjacent layer. A node with no neighbour
// there is keyed by its current index in layer, compared as is against the
// fixed-layer means. An unanchored node thus stays near its current slot,
// and a tie with an anchored node keeps the current relative order.
func sortByBarycenter(g *dag.DAG, layer []int, fixedPos map[int]int, useParents bool) {
	type keyed struct {
		id  int
		key float64
	}
	items := make([]keyed, len(layer))
	for i, id := range layer {
		nbrs := g.Children(id)
		if useParents {
			nbrs = g.Parents(id)
		}
		sum, n := 0, 0
		for _, nb := range nbrs {
			if p, ok := fixedPos[nb]; ok {
				sum += p
				n++
			}
		}
		key := float64(i)
		if n > 0 {
			key = float64(sum) / float64(n)
		}
		items[i] = keyed{id, key}
	}
	slices.SortStableFunc(items, func(a, b keyed) int {
		switch {
		case a.key < b.key:
			return -1
		case a.key > b.key:
			return 1
		}
		return 0
	})
	for i, it := range items {
		layer[i] = it.id
	}
}

// transpose swaps adjacent nodes while doing so strictly reduces the
// crossings against both neighbouring layers.
func transpose(g *dag.DAG, orders [][]int) {
	for improved := true; improved; {
		improved = false
		for l, layer := range orders {
			var above, below map[int]int
			if l > 0 {
				above = dag.PosMap(orders[l-1])
			}
			if l+1 < len(orders) {
				below = dag.PosMap(orders[l+1])
			}
			for i := 0; i+1 < len(layer); i++ {
				u, v := layer[i], layer[i+1]
				before := pairCrossings(g, u, v, above, below)
				after := pairCrossings(g, v, u, above, below)
				if after < before {
					layer[i], layer[i+1] = v, u
					improved = true
				}
			}
		}
	}
}

func pairCrossings(g *dag.DAG, left, right int, above, below map[int]int) int {
	c := 0
	if above != nil {
		c += dag.CountPairCrossingsWithPos(g, left, right, above, true)
	}
	if below != nil {
		c += dag.CountPairCrossingsWithPos(g, left, right, below, false)
	}
	return c
}
