package dag

import (
	"errors"
	"slices"
	"testing"

	"github.com/speich/dGraph/pkg/graph"
)

func birds() graph.Data {
	return graph.Data{
		NumLayer:    4,
		MaxPerLayer: 2,
		NodeList: []graph.NodeSpec{
			{Label: "Rubecula", Layer: 0},
			{Label: "Turdus", Layer: 3},
			{Label: "Corvus", Layer: 1},
			{Label: "Falco", Layer: 1},
			{Label: "Cathartes", Layer: 2},
			{Label: "Parus", Layer: 0},
		},
		AdjList: [][]int{{2, 3, 4}, {}, {1}, {}, {}, {2}},
	}
}

func TestNew_InvalidLayerCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := New(n); !errors.Is(err, ErrInvalidLayerCount) {
			t.Errorf("New(%d) error = %v, want ErrInvalidLayerCount", n, err)
		}
	}
}

func TestFromData(t *testing.T) {
	g, err := FromData(birds(), 4)
	if err != nil {
		t.Fatalf("FromData() error = %v", err)
	}
	if g.NodeCount() != 6 {
		t.Errorf("NodeCount() = %d, want 6", g.NodeCount())
	}
	if g.EdgeCount() != 6 {
		t.Errorf("EdgeCount() = %d, want 6", g.EdgeCount())
	}
	if got := g.NodesInLayer(0); !slices.Equal(got, []int{0, 5}) {
		t.Errorf("NodesInLayer(0) = %v, want [0 5]", got)
	}
	if got := g.Parents(2); !slices.Equal(got, []int{0, 5}) {
		t.Errorf("Parents(2) = %v, want [0 5]", got)
	}
	n, ok := g.Node(4)
	if !ok || n.Label != "Cathartes" || n.Index != 4 || n.Edge != -1 || n.IsVirtual() {
		t.Errorf("Node(4) = %+v", n)
	}
	if err := g.Validate(); !errors.Is(err, ErrNonConsecutiveLayers) {
		t.Errorf("Validate() = %v, want ErrNonConsecutiveLayers before subdivision", err)
	}
}

func TestFromData_Errors(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(d *graph.Data)
		numLayer   int
		want       error
		wantNode   int
		wantTarget int
	}{
		{
			name:       "LayerTooHigh",
			mutate:     func(d *graph.Data) { d.NodeList[1].Layer = 4 },
			numLayer:   4,
			want:       ErrLayerOutOfRange,
			wantNode:   1,
			wantTarget: -1,
		},
		{
			name:       "NegativeLayer",
			mutate:     func(d *graph.Data) { d.NodeList[3].Layer = -1 },
			numLayer:   4,
			want:       ErrLayerOutOfRange,
			wantNode:   3,
			wantTarget: -1,
		},
		{
			name:       "UnknownTarget",
			mutate:     func(d *graph.Data) { d.AdjList[5] = []int{2, 6} },
			numLayer:   4,
			want:       ErrUnknownTargetNode,
			wantNode:   5,
			wantTarget: 6,
		},
		{
			name:       "NegativeTarget",
			mutate:     func(d *graph.Data) { d.AdjList[0] = []int{-2} },
			numLayer:   4,
			want:       ErrUnknownTargetNode,
			wantNode:   0,
			wantTarget: -2,
		},
		{
			name:       "AdjListTooLong",
			mutate:     func(d *graph.Data) { d.AdjList = append(d.AdjList, []int{1}) },
			numLayer:   4,
			want:       ErrUnknownSourceNode,
			wantNode:   6,
			wantTarget: -1,
		},
		{
			name:       "SameLayer",
			mutate:     func(d *graph.Data) { d.AdjList[2] = []int{3} },
			numLayer:   4,
			want:       ErrSameLayerEdge,
			wantNode:   2,
			wantTarget: 3,
		},
		{
			name:       "Reverse",
			mutate:     func(d *graph.Data) { d.AdjList[4] = []int{0} },
			numLayer:   4,
			want:       ErrReverseEdge,
			wantNode:   4,
			wantTarget: 0,
		},
		{
			name:       "LayerCountMismatch",
			mutate:     func(d *graph.Data) {},
			numLayer:   5,
			want:       ErrLayerCountMismatch,
			wantNode:   -1,
			wantTarget: -1,
		},
		{
			name:       "InvalidLayerCount",
			mutate:     func(d *graph.Data) { d.NumLayer = 0 },
			numLayer:   0,
			want:       ErrInvalidLayerCount,
			wantNode:   -1,
			wantTarget: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := birds()
			tt.mutate(&data)

			g, err := FromData(data, tt.numLayer)
			if g != nil {
				t.Error("FromData() returned a graph alongside an error")
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("FromData() error = %v, want %v", err, tt.want)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %T is not a *ValidationError", err)
			}
			if verr.Node != tt.wantNode || verr.Target != tt.wantTarget {
				t.Errorf("ValidationError{Node: %d, Target: %d}, want {%d, %d}",
					verr.Node, verr.Target, tt.wantNode, tt.wantTarget)
			}
			if verr.Error() == "" {
				t.Error("Error() is empty")
			}
		})
	}
}

func TestAddEdge_UnknownEndpoints(t *testing.T) {
	g, _ := New(2)
	a, _ := g.AddNode(Node{Layer: 0})
	if err := g.AddEdge(Edge{From: 9, To: a}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge(unknown from) = %v", err)
	}
	if err := g.AddEdge(Edge{From: a, To: 9}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge(unknown to) = %v", err)
	}
}

func TestSplitEdge(t *testing.T) {
	g, _ := New(3)
	a, _ := g.AddNode(Node{Layer: 0})
	b, _ := g.AddNode(Node{Layer: 2})
	c, _ := g.AddNode(Node{Layer: 2})
	v, _ := g.AddNode(Node{Layer: 1, Kind: NodeKindVirtual})
	_ = g.AddEdge(Edge{From: a, To: b})
	_ = g.AddEdge(Edge{From: a, To: c})

	if err := g.SplitEdge(a, b, v); err != nil {
		t.Fatalf("SplitEdge() error = %v", err)
	}
	if got := g.Children(a); !slices.Equal(got, []int{v, c}) {
		t.Errorf("Children(a) = %v, want [%d %d]", got, v, c)
	}
	if got := g.Parents(b); !slices.Equal(got, []int{v}) {
		t.Errorf("Parents(b) = %v, want [%d]", got, v)
	}
	want := []Edge{{a, v}, {v, b}, {a, c}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
	if err := g.SplitEdge(b, a, v); !errors.Is(err, ErrEdgeNotFound) {
		t.Errorf("SplitEdge(missing) = %v, want ErrEdgeNotFound", err)
	}
}

func TestMaxLayerSizeAndVirtualCount(t *testing.T) {
	g, _ := New(2)
	_, _ = g.AddNode(Node{Layer: 0})
	_, _ = g.AddNode(Node{Layer: 1})
	_, _ = g.AddNode(Node{Layer: 1, Kind: NodeKindVirtual})
	if g.MaxLayerSize() != 2 {
		t.Errorf("MaxLayerSize() = %d, want 2", g.MaxLayerSize())
	}
	if g.VirtualCount() != 1 {
		t.Errorf("VirtualCount() = %d, want 1", g.VirtualCount())
	}
	if g.NodesInLayer(5) != nil {
		t.Error("NodesInLayer(out of range) should be nil")
	}
}
