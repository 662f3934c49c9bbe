package grid

import (
	"bytes"
	"encoding/json"
	"testing"
)

func sample() *Grid {
	a := &Node{Label: "a", Layer: 0, Column: 0, Index: 0, Edge: -1}
	v := &Node{Layer: 1, Column: 1, Virtual: true, Index: -1, Edge: 0}
	b := &Node{Label: "b", Layer: 2, Column: 0, Index: 1, Edge: -1}
	a.Targets = []Coord{{1, 1}}
	v.Sources = []Coord{{0, 0}}
	v.Targets = []Coord{{0, 2}}
	b.Sources = []Coord{{1, 1}}
	return &Grid{
		NumLayer: 3,
		Width:    2,
		Layers:   [][]*Node{{a}, {nil, v}, {b}},
		Chains:   []Chain{{Edge: 0, From: 0, To: 1, Path: []Coord{{0, 0}, {1, 1}, {0, 2}}}},
	}
}

func TestCoordJSON(t *testing.T) {
	data, err := json.Marshal(Coord{Column: 2, Layer: 5})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[2,5]" {
		t.Errorf("Marshal = %s, want [2,5]", data)
	}

	var c Coord
	if err := json.Unmarshal([]byte("[3,1]"), &c); err != nil {
		t.Fatal(err)
	}
	if c != (Coord{Column: 3, Layer: 1}) {
		t.Errorf("Unmarshal = %v", c)
	}
	if err := json.Unmarshal([]byte(`"x"`), &c); err == nil {
		t.Error("expected error for non-array coordinate")
	}
}

func TestAt(t *testing.T) {
	g := sample()
	tests := []struct {
		c    Coord
		want string
		wantNil bool
	}{
		{Coord{0, 0}, "a", false},
		{Coord{0, 1}, "", true}, // gap
		{Coord{1, 1}, "", false},
		{Coord{5, 0}, "", true},
		{Coord{0, 9}, "", true},
		{Coord{-1, 0}, "", true},
	}
	for _, tt := range tests {
		n := g.At(tt.c)
		if (n == nil) != tt.wantNil {
			t.Errorf("At(%v) nil = %v, want %v", tt.c, n == nil, tt.wantNil)
			continue
		}
		if n != nil && n.Label != tt.want {
			t.Errorf("At(%v).Label = %q, want %q", tt.c, n.Label, tt.want)
		}
	}
}

func TestAllSkipsGaps(t *testing.T) {
	var labels []string
	for n := range sample().All() {
		labels = append(labels, n.Label)
	}
	if len(labels) != 3 {
		t.Fatalf("All yielded %d nodes, want 3", len(labels))
	}
	if labels[0] != "a" || labels[1] != "" || labels[2] != "b" {
		t.Errorf("All order = %q", labels)
	}
}

func TestFind(t *testing.T) {
	g := sample()
	if n := g.Find("b"); n == nil || n.Layer != 2 {
		t.Errorf("Find(b) = %+v", n)
	}
	if n := g.Find("zzz"); n != nil {
		t.Errorf("Find(zzz) = %+v, want nil", n)
	}
	if got := len(g.Layer(1)); got != 1 {
		t.Errorf("Layer(1) has %d nodes, want 1", got)
	}
}

func TestStats(t *testing.T) {
	s := sample().Stats()
	want := Stats{Nodes: 3, Virtual: 1, Edges: 2, Chains: 1, Width: 2, NumLayer: 3}
	if s != want {
		t.Errorf("Stats = %+v, want %+v", s, want)
	}
}

func TestAttrs(t *testing.T) {
	n := &Node{}
	n.SetAttr("svg.node", "circle-1")
	if v, ok := n.Attrs["svg.node"]; !ok || v != "circle-1" {
		t.Errorf("Attrs[svg.node] = %v, %v", v, ok)
	}
}

func TestWriteRead(t *testing.T) {
	g := sample()
	g.Layers[0][0].SetAttr("svg.node", 1)

	var buf bytes.Buffer
	if err := Write(&buf, g); err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(buf.Bytes(), []byte("svg.node")) {
		t.Error("attrs leaked into JSON")
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != 2 || got.NumLayer != 3 {
		t.Errorf("header = %d/%d", got.Width, got.NumLayer)
	}
	if got.Layers[1][0] != nil {
		t.Error("gap not preserved")
	}
	v := got.At(Coord{1, 1})
	if v == nil || !v.Virtual || v.Edge != 0 {
		t.Fatalf("virtual node = %+v", v)
	}
	if len(v.Targets) != 1 || v.Targets[0] != (Coord{0, 2}) {
		t.Errorf("targets = %v", v.Targets)
	}
	if len(got.Chains[0].Path) != 3 {
		t.Errorf("chain path = %v", got.Chains[0].Path)
	}
}
