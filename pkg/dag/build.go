package dag

import (
	"fmt"

	"github.com/speich/dGraph/pkg/graph"
)

// ValidationError reports graph data that cannot be laid out. It identifies
// the offending node (and adjacency target, for edge errors) by its index in
// the caller's node list and wraps one of the package's sentinel errors, so
// callers can test the cause with errors.Is.
type ValidationError struct {
	Node   int    // Index into the node list, or -1 if not node-specific
	Target int    // Adjacency target index, or -1 for node errors
	Label  string // Label of Node, if known
	Err    error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch {
	case e.Node < 0:
		return fmt.Sprintf("invalid graph: %v", e.Err)
	case e.Target < 0:
		return fmt.Sprintf("node %d (%s): %v", e.Node, e.Label, e.Err)
	default:
		return fmt.Sprintf("edge %d->%d (%s): %v", e.Node, e.Target, e.Label, e.Err)
	}
}

// Unwrap returns the sentinel cause for errors.Is/As compatibility.
func (e *ValidationError) Unwrap() error { return e.Err }

// FromData validates graph data against numLayer and builds the layered
// graph. Real node IDs equal their node list index; logical edges are added
// in [graph.Data.Edges] order, so an edge's position in [DAG.Edges] is its
// logical edge index until [transform.Subdivide] runs.
//
// FromData is all-or-nothing: it returns a *ValidationError for the first
// problem found and no graph. Checked, in order:
//
//   - numLayer must be positive (ErrInvalidLayerCount)
//   - data.NumLayer, if set, must equal numLayer (ErrLayerCountMismatch)
//   - every node layer lies in [0, numLayer) (ErrLayerOutOfRange)
//   - the adjacency list is not longer than the node list (ErrUnknownSourceNode)
//   - every target index is a valid node index (ErrUnknownTargetNode)
//   - every edge points strictly downward (ErrSameLayerEdge, ErrReverseEdge)
func FromData(data graph.Data, numLayer int) (*DAG, error) {
	g, err := New(numLayer)
	if err != nil {
		return nil, &ValidationError{Node: -1, Target: -1, Err: err}
	}
	if data.NumLayer > 0 && data.NumLayer != numLayer {
		return nil, &ValidationError{Node: -1, Target: -1,
			Err: fmt.Errorf("%w: data has %d, engine has %d", ErrLayerCountMismatch, data.NumLayer, numLayer)}
	}

	for i, spec := range data.NodeList {
		if _, err := g.AddNode(Node{Label: spec.Label, Layer: spec.Layer, Index: i, Edge: -1}); err != nil {
			return nil, &ValidationError{Node: i, Target: -1, Label: spec.Label,
				Err: fmt.Errorf("%w: layer %d not in [0, %d)", err, spec.Layer, numLayer)}
		}
	}

	if len(data.AdjList) > len(data.NodeList) {
		i := len(data.NodeList)
		return nil, &ValidationError{Node: i, Target: -1, Err: ErrUnknownSourceNode}
	}

	for _, e := range data.Edges() {
		src := data.NodeList[e.From]
		if err := g.AddEdge(Edge{From: e.From, To: e.To}); err != nil {
			return nil, &ValidationError{Node: e.From, Target: e.To, Label: src.Label, Err: err}
		}
		dst := data.NodeList[e.To]
		switch {
		case dst.Layer == src.Layer:
			return nil, &ValidationError{Node: e.From, Target: e.To, Label: src.Label, Err: ErrSameLayerEdge}
		case dst.Layer < src.Layer:
			return nil, &ValidationError{Node: e.From, Target: e.To, Label: src.Label, Err: ErrReverseEdge}
		}
	}
	return g, nil
}
