// Package grid defines the finished layout produced by the layered engine.
//
// A [Grid] stores every node, real and virtual, at a (column, layer)
// coordinate. Layer 0 is the top row; column 0 is the leftmost slot. Each
// [Node] lists the coordinates of its physical targets (one layer down) and
// sources (one layer up), so renderers and path finders can walk the layout
// without going back to the graph model.
//
// Grids round-trip through JSON with [Write] and [Read]. Coordinates encode
// as [column, layer] pairs.
package grid
