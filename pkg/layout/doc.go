// Package layout assigns grid columns to ordered layers.
//
// [Assign] is the last step of the layered pipeline: it takes the subdivided
// graph and the per-layer orders and produces a [grid.Grid] where every node,
// real or virtual, has a unique column within its layer. Two placement modes
// exist:
//
//   - Compacted: nodes are packed to the left in layer order.
//   - Spread: nodes drift toward the columns of their parents, limited by
//     [Options.MaxPerLayer], so long chains run straighter.
//
// Both modes keep the layer order, so crossing counts computed on the orders
// hold for the grid.
package layout
