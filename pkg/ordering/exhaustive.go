package ordering

import (
	"slices"

	"github.com/speich/dGraph/pkg/dag"
	"github.com/speich/dGraph/pkg/dag/perm"
)

// DefaultMaxPermute is the largest layer Exhaustive permutes when
// MaxLayerSize is zero. 7! = 5040 orders per layer and pass.
const DefaultMaxPermute = 7

// Exhaustive refines the [Barycentric] ordering by trying every permutation
// of each small layer while its neighbours stay fixed.
//
// A layer's permutation is replaced only when it strictly lowers the
// crossings against both adjacent layers, so every accepted change lowers
// the total and the sweeps terminate. Layers larger than MaxLayerSize keep
// their barycentric order. Sweeps stop after Passes rounds or as soon as a
// round changes nothing.
type Exhaustive struct {
	Passes       int
	MaxLayerSize int
}

// OrderLayers implements [Orderer].
func (e Exhaustive) OrderLayers(g *dag.DAG) [][]int {
	orders := Barycentric{Passes: e.Passes}.OrderLayers(g)
	if len(orders) < 2 || dag.CountCrossings(g, orders) == 0 {
		return orders
	}

	limit := e.MaxLayerSize
	if limit <= 0 {
		limit = DefaultMaxPermute
	}
	passes := e.Passes
	if passes <= 0 {
		passes = DefaultPasses
	}

	for range passes {
		improved := false
		for l, layer := range orders {
			if n := len(layer); n >= 2 && n <= limit && permuteLayer(g, orders, l) {
				improved = true
			}
		}
		if !improved {
			break
		}
	}
	return orders
}

// permuteLayer replaces orders[l] by its permutation with the fewest
// crossings against the adjacent layers. The first minimum found wins, so
// the current order is kept on ties. It reports whether the layer changed.
func permuteLayer(g *dag.DAG, orders [][]int, l int) bool {
	local := func() int {
		c := 0
		if l > 0 {
			c += dag.CountLayerCrossings(g, orders[l-1], orders[l])
		}
		if l+1 < len(orders) {
			c += dag.CountLayerCrossings(g, orders[l], orders[l+1])
		}
		return c
	}

	layer := orders[l]
	base := slices.Clone(layer)
	best, bestScore := slices.Clone(base), local()
	for p := range perm.Permutations(len(base)) {
		if bestScore == 0 {
			break
		}
		for i, j := range p {
			layer[i] = base[j]
		}
		if score := local(); score < bestScore {
			best, bestScore = slices.Clone(layer), score
		}
	}
	copy(layer, best)
	return !slices.Equal(best, base)
}
