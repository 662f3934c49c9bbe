// Package dag provides the layered graph model behind dGraph's Sugiyama-style
// layouts.
//
// # Overview
//
// A [DAG] holds nodes that are pre-assigned to one of a fixed number of
// horizontal layers, plus directed edges between them. Nodes live in an arena
// and are identified by a stable integer ID; adjacency is stored as ID lists,
// never as pointers, so the graph has no reference cycles and is trivially
// copied into the final grid.
//
// # Building From Graph Data
//
// [FromData] is the validating entry point. It accepts the caller's
// [graph.Data] (node list + adjacency list) and either returns a complete
// graph or a [*ValidationError] naming the offending node or edge:
//
//	g, err := dag.FromData(data, 4)
//	var verr *dag.ValidationError
//	if errors.As(err, &verr) && errors.Is(err, dag.ErrLayerOutOfRange) {
//	    // node verr.Node has a bad layer
//	}
//
// Edges must point strictly downward. Same-layer edges ([ErrSameLayerEdge])
// and reverse edges ([ErrReverseEdge]) are rejected at validation instead of
// being laid out with undefined geometry.
//
// # Node Kinds
//
//   - [NodeKindReal]: a node from the caller's node list
//   - [NodeKindVirtual]: an unlabeled node inserted by [transform.Subdivide]
//     to route one logical edge through an intermediate layer
//
// Virtual nodes record the logical edge they belong to in [Node.Edge]; chains
// are never shared between logical edges.
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] count crossings between
// consecutive layers with a Fenwick tree in O(E log V). The ordering package
// uses them to keep the best ordering found across sweeps.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Read-only operations such as
// counting crossings may run in parallel on a graph nobody mutates.
//
// [transform.Subdivide]: github.com/speich/dGraph/pkg/dag/transform
package dag
