package dag

import "slices"

// CountCrossings returns the total number of edge crossings for the given
// layer orderings. orders[l] holds the node IDs of layer l from left to
// right; crossings are summed over each pair of consecutive layers.
//
// Example:
//
//	orders := [][]int{
//	    {0, 5},    // layer 0
//	    {3, 6, 2}, // layer 1
//	}
//	crossings := dag.CountCrossings(g, orders)
//
// It runs in O(L × E log V) time where L is the number of layers, E is edges
// per layer pair, and V is nodes per layer.
func CountCrossings(g *DAG, orders [][]int) int {
	crossings := 0
	for l := 0; l+1 < len(orders); l++ {
		crossings += CountLayerCrossings(g, orders[l], orders[l+1])
	}
	return crossings
}

// CountLayerCrossings counts edge crossings between two adjacent layers using a
// Fenwick tree (binary indexed tree) for O(E log V) performance where E is the
// number of edges between the layers and V is the number of nodes in the lower
// layer.
//
// Two edges (u1,v1) and (u2,v2) cross if and only if:
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// This is equivalent to counting inversions in the sequence of target positions
// when edges are sorted by source position.
//
// Returns 0 if either layer is empty, as no crossings can exist without edges.
func CountLayerCrossings(g *DAG, upper, lower []int) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := PosMap(lower)
	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0

	// Walking upper left to right and each node's children sorted by position
	// visits edges in (upper, lower) order.
	for _, nodeID := range upper {
		targets := make([]int, 0, len(g.Children(nodeID)))
		for _, child := range g.Children(nodeID) {
			if pos, ok := lowerPos[child]; ok {
				targets = append(targets, pos)
			}
		}
		slices.Sort(targets)

		for _, pos := range targets {
			// Crossings = edges seen so far with target > pos
			lessOrEqual := 0
			for q := pos + 1; q > 0; q -= q & (-q) {
				lessOrEqual += fenwick[q]
			}
			crossings += total - lessOrEqual
		}
		for _, pos := range targets {
			total++
			for idx := pos + 1; idx < len(fenwick); idx += idx & (-idx) {
				fenwick[idx]++
			}
		}
	}
	return crossings
}

// CountPairCrossingsWithPos counts how many crossings the edges of two
// adjacent nodes (left before right) produce against an adjacent layer. If
// useParents is true, edges to the layer above are considered; otherwise edges
// to the layer below.
//
// The adjPos map should map node IDs to their positions in the adjacent
// layer. Nodes not in the map are ignored. This is used by transpose
// heuristics to decide whether swapping two neighbours reduces crossings.
func CountPairCrossingsWithPos(g *DAG, left, right int, adjPos map[int]int, useParents bool) int {
	var lnbr, rnbr []int
	if useParents {
		lnbr = g.Parents(left)
		rnbr = g.Parents(right)
	} else {
		lnbr = g.Children(left)
		rnbr = g.Children(right)
	}

	crossings := 0
	for _, ln := range lnbr {
		lp, ok := adjPos[ln]
		if !ok {
			continue
		}
		for _, rn := range rnbr {
			// If left's neighbor is to the right of right's neighbor, they cross
			if rp, ok := adjPos[rn]; ok && lp > rp {
				crossings++
			}
		}
	}
	return crossings
}
