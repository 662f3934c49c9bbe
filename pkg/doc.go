// Package pkg provides the libraries behind dGraph, a layered graph layout
// engine.
//
// # Overview
//
// dGraph takes a directed graph whose nodes are already assigned to layers
// and places them on a grid of layers and columns so that edges cross as
// little as possible. The pkg directory is organized by pipeline stage:
//
//  1. [graph] - input documents (JSON, TOML, YAML)
//  2. [dag] - validated layered graph and virtual node insertion
//  3. [ordering] - crossing reduction within each layer
//  4. [layout] - column assignment
//  5. [grid] - the finished layout
//  6. [layered] - the engine tying stages 2 to 5 together
//  7. [pathfind] - downstream and upstream path search and highlighting
//  8. [render] - SVG, Graphviz, PDF and PNG output
//  9. [pipeline] - cached load, layout and render runs
//
// Supporting packages: [cache] (file, redis and mongo backends), [config]
// (dgraph.toml), [errors] (coded errors), [httputil] (source fetching),
// [observability] (hooks and Prometheus metrics) and [server] (HTTP API).
//
// # Architecture
//
//	graph document (file or URL)
//	         ↓
//	    [graph] parse
//	         ↓
//	    [dag] validate, subdivide long edges
//	         ↓
//	    [ordering] barycentric sweeps
//	         ↓
//	    [layout] assign columns
//	         ↓
//	    [grid] → [render] / [pathfind]
//
// # Quick Start
//
//	data, _ := graph.ReadFile("birds.json")
//	engine, _ := layered.New(layered.Config{NumLayer: data.NumLayer})
//	g, _ := engine.Render(data)
//	os.WriteFile("birds.svg", svg.Render(g), 0o644)
//
// For caching and multiple formats use [pipeline.Runner].
//
// [graph]: github.com/speich/dGraph/pkg/graph
// [dag]: github.com/speich/dGraph/pkg/dag
// [ordering]: github.com/speich/dGraph/pkg/ordering
// [layout]: github.com/speich/dGraph/pkg/layout
// [grid]: github.com/speich/dGraph/pkg/grid
// [layered]: github.com/speich/dGraph/pkg/layered
// [pathfind]: github.com/speich/dGraph/pkg/pathfind
// [render]: github.com/speich/dGraph/pkg/render
// [pipeline]: github.com/speich/dGraph/pkg/pipeline
// [pipeline.Runner]: github.com/speich/dGraph/pkg/pipeline#Runner
// [cache]: github.com/speich/dGraph/pkg/cache
// [config]: github.com/speich/dGraph/pkg/config
// [errors]: github.com/speich/dGraph/pkg/errors
// [httputil]: github.com/speich/dGraph/pkg/httputil
// [observability]: github.com/speich/dGraph/pkg/observability
// [server]: github.com/speich/dGraph/pkg/server
package pkg
