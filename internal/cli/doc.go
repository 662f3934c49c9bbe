// Package cli implements the dgraph command-line interface.
//
// The CLI reads graph documents (JSON, TOML or YAML, from a file or an
// http(s) URL), lays them out with the layered engine and writes grids or
// rendered artifacts. It is built with cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - layout: compute the grid and write it as JSON
//   - render: write SVG, DOT, nodelink SVG, PDF, PNG or JSON artifacts
//   - path: list the nodes upstream and downstream of a node
//   - view: browse a layout interactively in the terminal
//   - serve: run the HTTP API
//   - cache: clear or locate the local file cache
//
// # Configuration
//
// Settings come from dgraph.toml (see --config), then DGRAPH_* environment
// variables, then command-line flags.
//
// # Logging
//
// The level comes from log.level or DGRAPH_LOG_LEVEL; --verbose (-v) forces
// debug. Each layout, path or render run logs one line with the grid
// statistics, e.g. "dgraph: layout nodes=8 virtual=2 width=3 cached=false".
package cli
