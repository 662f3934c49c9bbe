package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func birds() Data {
	return Data{
		NumLayer:    4,
		MaxPerLayer: 2,
		NodeList: []NodeSpec{
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

const birdsJSON = `{
  "numLayer": 4,
  "maxPerLayer": 2,
  "nodeList": [
    {"label": "Rubecula", "layer": 0},
    {"label": "Turdus", "layer": 3},
    {"label": "Corvus", "layer": 1},
    {"label": "Falco", "layer": 1},
    {"label": "Cathartes", "layer": 2},
    {"label": "Parus", "layer": 0}
  ],
  "adjList": [[2, 3, 4], [], [1], [], [], [2]]
}`

const birdsTOML = `numLayer = 4
maxPerLayer = 2
adjList = [[2, 3, 4], [], [1], [], [], [2]]

[[nodeList]]
label = "Rubecula"
layer = 0

[[nodeList]]
label = "Turdus"
layer = 3

[[nodeList]]
label = "Corvus"
layer = 1

[[nodeList]]
label = "Falco"
layer = 1

[[nodeList]]
label = "Cathartes"
layer = 2

[[nodeList]]
label = "Parus"
layer = 0
`

const birdsYAML = `numLayer: 4
maxPerLayer: 2
nodeList:
  - {label: Rubecula, layer: 0}
  - {label: Turdus, layer: 3}
  - {label: Corvus, layer: 1}
  - {label: Falco, layer: 1}
  - {label: Cathartes, layer: 2}
  - {label: Parus, layer: 0}
adjList:
  - [2, 3, 4]
  - []
  - [1]
  - []
  - []
  - [2]
`

func TestRead(t *testing.T) {
	tests := []struct {
		format string
		input  string
	}{
		{FormatJSON, birdsJSON},
		{FormatTOML, birdsTOML},
		{FormatYAML, birdsYAML},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if !reflect.DeepEqual(got, birds()) {
				t.Errorf("Read = %+v, want %+v", got, birds())
			}
		})
	}
}

func TestReadRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		format string
		input  string
	}{
		{FormatJSON, `{"numLayer": 2, "nodes": []}`},
		{FormatTOML, "numLayer = 2\nnodes = []\n"},
		{FormatYAML, "numLayer: 2\nnodes: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.input), tt.format); err == nil {
				t.Error("expected error for unknown key")
			}
		})
	}
}

func TestReadUnsupportedFormat(t *testing.T) {
	if _, err := Read(strings.NewReader("{}"), "xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"birds.json", FormatJSON, false},
		{"dir/birds.TOML", FormatTOML, false},
		{"birds.yaml", FormatYAML, false},
		{"birds.yml", FormatYAML, false},
		{"birds.xml", "", true},
		{"birds", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "birds.yml")
	if err := os.WriteFile(path, []byte(birdsYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, birds()) {
		t.Errorf("ReadFile = %+v", got)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	raw, err := Marshal(birds())
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReadJSON(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, birds()) {
		t.Errorf("round trip = %+v", got)
	}
}

func TestMarshalIsStable(t *testing.T) {
	a, _ := Marshal(birds())
	b, _ := Marshal(birds())
	if !bytes.Equal(a, b) {
		t.Error("Marshal is not deterministic")
	}

	other := birds()
	other.AdjList[5] = nil
	c, _ := Marshal(other)
	if bytes.Equal(a, c) {
		t.Error("different documents marshal to the same bytes")
	}
}

func TestEdges(t *testing.T) {
	d := birds()
	want := []Edge{{0, 2}, {0, 3}, {0, 4}, {2, 1}, {5, 2}}
	if got := d.Edges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
	if d.EdgeCount() != len(want) {
		t.Errorf("EdgeCount() = %d, want %d", d.EdgeCount(), len(want))
	}
}
