// Package layered is the entry point of the dGraph layout engine.
//
// An [Engine] turns graph data whose nodes are pre-assigned to layers into a
// [grid.Grid] in four steps:
//
//  1. Validate the data and build the graph model ([dag.FromData]).
//  2. Break edges spanning several layers into chains of virtual nodes
//     ([transform.Subdivide]).
//  3. Order the nodes of each layer to reduce edge crossings
//     ([ordering.Barycentric] by default).
//  4. Assign grid columns ([layout.Assign]).
//
// The finished grid is published atomically. Renderers and path finders read
// it through [Engine.Grid], [Engine.Nodes], and [Engine.GraphWidth]:
//
//	engine, err := layered.New(layered.Config{NumLayer: 4})
//	if err != nil {
//	    return err
//	}
//	g, err := engine.Render(data)
//	var verr *dag.ValidationError
//	if errors.As(err, &verr) {
//	    // data rejected; the previous grid is still published
//	}
//
// [transform.Subdivide]: github.com/speich/dGraph/pkg/dag/transform
package layered
