package graph

// =============================================================================
// Data - Layout Input
// =============================================================================

// Data is the input of a layered layout: nodes with caller-assigned layers and
// an adjacency list parallel to NodeList.
//
// AdjList[i] lists the indices (into NodeList) of the targets of node i. The
// adjacency list may be shorter than NodeList; missing entries mean the node
// has no outgoing edges.
type Data struct {
	NumLayer    int        `json:"numLayer" toml:"numLayer" yaml:"numLayer"`
	MaxPerLayer int        `json:"maxPerLayer,omitempty" toml:"maxPerLayer" yaml:"maxPerLayer"`
	NodeList    []NodeSpec `json:"nodeList" toml:"nodeList" yaml:"nodeList"`
	AdjList     [][]int    `json:"adjList" toml:"adjList" yaml:"adjList"`
}

// NodeSpec is a caller-supplied node: a display label and its layer.
type NodeSpec struct {
	Label string `json:"label" toml:"label" yaml:"label"`
	Layer int    `json:"layer" toml:"layer" yaml:"layer"`
}

// Edge is a logical (pre-expansion) directed edge between two NodeList
// indices.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Edges returns the logical edges in deterministic order: by source index,
// then by position in the source's adjacency entry. Indices are returned
// as given; they are not validated.
func (d Data) Edges() []Edge {
	var edges []Edge
	for from, targets := range d.AdjList {
		for _, to := range targets {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// EdgeCount returns the number of logical edges in the adjacency list.
func (d Data) EdgeCount() int {
	n := 0
	for _, targets := range d.AdjList {
		n += len(targets)
	}
	return n
}

