package cli

import (
	"slices"
	"testing"

	"github.com/speich/dGraph/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and empties", " dot, ,json ", []string{"dot", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid all", []string{"svg", "nodelink", "dot", "pdf", "png", "json"}, false},
		{"invalid format", []string{"invalid"}, true},
		{"mixed valid invalid", []string{"svg", "invalid"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pipeline.ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"from input", "", "graphs/birds.json", "graphs/birds"},
		{"from url", "", "https://example.org/data/birds.yaml?v=2", "birds"},
		{"url without path", "", "https://example.org", "graph"},
		{"output with format ext", "out/birds.svg", "birds.json", "out/birds"},
		{"output without ext", "out/birds", "birds.json", "out/birds"},
		{"output with other ext", "out/birds.v2", "birds.json", "out/birds.v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := map[string]string{
		pipeline.FormatSVG:      "birds.svg",
		pipeline.FormatNodelink: "birds.nodelink.svg",
		pipeline.FormatDOT:      "birds.dot",
		pipeline.FormatJSON:     "birds.layout.json",
		pipeline.FormatPNG:      "birds.png",
	}
	for format, want := range tests {
		if got := outputPath("birds", format); got != want {
			t.Errorf("outputPath(birds, %s) = %q, want %q", format, got, want)
		}
	}
}
