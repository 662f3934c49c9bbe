// Package transform provides graph transformations that prepare a layered
// DAG for ordering and coordinate assignment.
//
// # Virtual Node Insertion
//
// [Subdivide] breaks long edges (spanning multiple layers) into chains of
// single-layer hops by inserting virtual nodes:
//
//	Before: Rubecula (layer 0) → Cathartes (layer 2)
//	After:  Rubecula → v → Cathartes
//
// Every logical edge yields exactly one [Chain]; an edge spanning k layers
// gets k-1 virtual nodes of its own. Renderers and path finders rely on this
// 1:1 mapping to highlight a logical edge as a unit.
//
// # Usage
//
//	g, err := dag.FromData(data, data.NumLayer)
//	if err != nil {
//	    return err
//	}
//	chains, err := transform.Subdivide(g)
//	if err != nil {
//	    return err
//	}
//	_ = g.Validate() // nil: every edge now spans one layer
package transform
