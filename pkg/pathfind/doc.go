// Package pathfind walks finished layouts to find connected nodes.
//
// All searches are breadth-first over the coordinate links of a [grid.Grid]
// and use an explicit [Queue]. [SearchByTargets] follows edges downward,
// [SearchBySources] upward. [NewHighlight] combines both into the set of
// nodes and edges connected to a selected node, which the SVG renderer and
// the terminal viewer use to mark a path.
package pathfind
