// Package graph defines the input document of a layered layout and its
// serialization.
//
// A [Data] document lists nodes with caller-assigned layers and an adjacency
// list parallel to the node list:
//
//	{
//	  "numLayer": 4,
//	  "nodeList": [{"label": "Rubecula", "layer": 0}, {"label": "Corvus", "layer": 1}],
//	  "adjList": [[1], []]
//	}
//
// Documents are read from JSON, TOML or YAML. [ReadFile] picks the format
// from the file extension; [Read] takes it explicitly:
//
//	data, _ := graph.ReadFile("birds.yaml")
//	data, _ := graph.Read(resp.Body, graph.FormatJSON)
//
// Unknown keys are rejected in every format so that typos in hand-written
// files are reported instead of silently ignored.
//
// [Marshal] produces the canonical JSON encoding. Its output is stable for
// equal documents and is what cache keys are hashed from.
//
// The package only parses; it does not check that layers are in range or
// that edges point downward. That is the job of [dag.FromData].
//
// [dag.FromData]: github.com/speich/dGraph/pkg/dag
package graph
