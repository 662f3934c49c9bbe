package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidLayerCount is returned by [New] when the layer count is not
	// positive. A layout needs at least one layer.
	ErrInvalidLayerCount = errors.New("layer count must be positive")

	// ErrLayerOutOfRange is returned when a node's layer is outside
	// [0, numLayer).
	ErrLayerOutOfRange = errors.New("node layer out of range")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist, and by [FromData] when the adjacency list has more
	// entries than the node list.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist, and by [FromData] when an adjacency entry references an
	// index outside the node list.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSameLayerEdge is returned by [FromData] for an edge whose endpoints
	// share a layer. Such edges cannot be drawn in a layered layout and are
	// rejected rather than silently dropped.
	ErrSameLayerEdge = errors.New("edge connects nodes in the same layer")

	// ErrReverseEdge is returned by [FromData] for an edge pointing to a
	// lower layer. Layers are caller-assigned, so a reverse edge means the
	// layering is inconsistent with the edge direction.
	ErrReverseEdge = errors.New("edge points to a lower layer")

	// ErrLayerCountMismatch is returned by [FromData] when the graph data
	// declares a layer count different from the one the engine was built with.
	ErrLayerCountMismatch = errors.New("graph layer count differs from engine configuration")

	// ErrInvalidCapacity is returned when maxPerLayer is not positive for a
	// non-compacted layout.
	ErrInvalidCapacity = errors.New("maxPerLayer must be positive")

	// ErrNonConsecutiveLayers is returned by [DAG.Validate] when an edge
	// connects nodes that are not in adjacent layers (From.Layer+1 != To.Layer).
	// It indicates that virtual node insertion has not run yet.
	ErrNonConsecutiveLayers = errors.New("edges must connect consecutive layers")

	// ErrEdgeNotFound is returned by [DAG.SplitEdge] when the edge to split
	// does not exist.
	ErrEdgeNotFound = errors.New("edge not found")
)

// NodeKind distinguishes caller-supplied nodes from nodes synthesized during
// virtual node insertion.
type NodeKind int

const (
	// NodeKindReal represents a node from the caller's node list.
	NodeKindReal NodeKind = iota
	// NodeKindVirtual represents an unlabeled node inserted to carry a
	// multi-layer edge through an intermediate layer.
	NodeKindVirtual
)

// Node is a vertex of the layered graph.
//
// Nodes live in an arena owned by the [DAG]; ID is the arena index and never
// changes. Real nodes get the same ID as their position in the input node
// list, virtual nodes are appended after them.
type Node struct {
	ID    int      // Arena index, assigned by AddNode
	Label string   // Display label, empty for virtual nodes
	Layer int      // Layer assignment (0 = top)
	Kind  NodeKind // Real or virtual

	// Index is the position in the caller's node list, or -1 for virtual nodes.
	Index int
	// Edge is the logical edge a virtual node routes, or -1 for real nodes.
	Edge int
}

// IsVirtual reports whether the node was synthesized to subdivide a long edge.
func (n Node) IsVirtual() bool { return n.Kind == NodeKindVirtual }

// Edge is a directed connection between two nodes identified by arena ID.
type Edge struct {
	From int
	To   int
}

// DAG is a layered directed acyclic graph with a fixed number of layers.
// Every node belongs to exactly one layer in [0, NumLayer()). Edges may span
// several layers until [transform.Subdivide] breaks them up; afterwards
// [DAG.Validate] guarantees every edge connects consecutive layers.
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	numLayer int
	nodes    []*Node
	edges    []Edge
	outgoing [][]int // node ID -> target IDs, in insertion order
	incoming [][]int // node ID -> source IDs, in insertion order
	layers   [][]int // layer -> node IDs, in insertion order
}

// New creates an empty DAG with numLayer layers.
// Returns ErrInvalidLayerCount if numLayer is not positive.
func New(numLayer int) (*DAG, error) {
	if numLayer <= 0 {
		return nil, ErrInvalidLayerCount
	}
	return &DAG{
		numLayer: numLayer,
		layers:   make([][]int, numLayer),
	}, nil
}

// NumLayer returns the number of layers the graph was created with.
func (d *DAG) NumLayer() int { return d.numLayer }

// AddNode appends a node to the arena and returns its ID. The node's ID field
// is overwritten with the assigned ID. Returns ErrLayerOutOfRange if the
// node's layer is outside [0, NumLayer()).
func (d *DAG) AddNode(n Node) (int, error) {
	if n.Layer < 0 || n.Layer >= d.numLayer {
		return -1, ErrLayerOutOfRange
	}
	n.ID = len(d.nodes)
	d.nodes = append(d.nodes, &n)
	d.outgoing = append(d.outgoing, nil)
	d.incoming = append(d.incoming, nil)
	d.layers[n.Layer] = append(d.layers[n.Layer], n.ID)
	return n.ID, nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode if an endpoint does
// not exist. Parallel edges are kept; each is routed separately.
func (d *DAG) AddEdge(e Edge) error {
	if !d.has(e.From) {
		return ErrUnknownSourceNode
	}
	if !d.has(e.To) {
		return ErrUnknownTargetNode
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// SplitEdge replaces the first edge from→to with the two edges from→via and
// via→to. The via node takes the place of to in from's target list and the
// place of from in to's source list, so adjacency order is preserved.
// Returns ErrEdgeNotFound if no edge from→to exists.
func (d *DAG) SplitEdge(from, to, via int) error {
	if !d.has(from) || !d.has(to) || !d.has(via) {
		return ErrEdgeNotFound
	}
	ei := slices.Index(d.edges, Edge{From: from, To: to})
	oi := slices.Index(d.outgoing[from], to)
	ii := slices.Index(d.incoming[to], from)
	if ei < 0 || oi < 0 || ii < 0 {
		return ErrEdgeNotFound
	}

	d.edges[ei] = Edge{From: from, To: via}
	d.edges = slices.Insert(d.edges, ei+1, Edge{From: via, To: to})
	d.outgoing[from][oi] = via
	d.incoming[to][ii] = via
	d.incoming[via] = append(d.incoming[via], from)
	d.outgoing[via] = append(d.outgoing[via], to)
	return nil
}

func (d *DAG) has(id int) bool { return id >= 0 && id < len(d.nodes) }

// Nodes returns all nodes in ID order. The returned slice contains pointers
// to the arena nodes, so modifications affect the graph.
func (d *DAG) Nodes() []*Node { return slices.Clone(d.nodes) }

// Node returns the node with the given ID and true, or nil and false if the
// ID is out of range.
func (d *DAG) Node(id int) (*Node, bool) {
	if !d.has(id) {
		return nil, false
	}
	return d.nodes[id], true
}

// Edges returns a copy of all edges. Edges produced by [DAG.SplitEdge] are
// placed directly after the edge they were split from.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs of the node's targets in insertion order.
// The returned slice should not be modified.
func (d *DAG) Children(id int) []int {
	if !d.has(id) {
		return nil
	}
	return d.outgoing[id]
}

// Parents returns the IDs of the node's sources in insertion order.
// The returned slice should not be modified.
func (d *DAG) Parents(id int) []int {
	if !d.has(id) {
		return nil
	}
	return d.incoming[id]
}

// NodesInLayer returns the IDs of all nodes in the layer, in insertion order.
// Returns nil for an empty or out-of-range layer.
func (d *DAG) NodesInLayer(layer int) []int {
	if layer < 0 || layer >= d.numLayer {
		return nil
	}
	return slices.Clone(d.layers[layer])
}

// MaxLayerSize returns the node count of the most populated layer.
func (d *DAG) MaxLayerSize() int {
	widest := 0
	for _, ids := range d.layers {
		widest = max(widest, len(ids))
	}
	return widest
}

// VirtualCount returns the number of virtual nodes in the graph.
func (d *DAG) VirtualCount() int {
	n := 0
	for _, node := range d.nodes {
		if node.IsVirtual() {
			n++
		}
	}
	return n
}

// Validate checks that every edge connects nodes in consecutive layers
// (From.Layer+1 == To.Layer). Because layers strictly increase along every
// edge, a graph passing Validate is acyclic.
func (d *DAG) Validate() error {
	for _, e := range d.edges {
		if d.nodes[e.To].Layer != d.nodes[e.From].Layer+1 {
			return ErrNonConsecutiveLayers
		}
	}
	return nil
}

// PosMap creates a position lookup map from an ordered slice of node IDs.
// This converts layer orderings into fast position lookups for crossing
// calculations.
func PosMap(ids []int) map[int]int {
	m := make(map[int]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}
