// Package svg draws finished layouts as SVG documents.
//
// The drawing mirrors the grid: one cell per (column, layer), horizontal
// lines with "layer N" labels, real nodes as small labelled circles, and
// straight edges between cell centers. Multi-layer edges appear as runs of
// segments through the (undrawn) virtual nodes; only the final segment gets
// an arrow head.
//
//	g, _ := engine.Render(data)
//	out := svg.Render(g, svg.WithInvert(),
//	    svg.WithHighlight(pathfind.NewHighlight(g, g.Find("Corvus"))))
package svg
