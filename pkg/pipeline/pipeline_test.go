package pipeline

import (
	"testing"

	"github.com/speich/dGraph/pkg/ordering"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"dot", false},
		{"nodelink", false},
		{"json", false},
		{"pdf", false},
		{"png", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateOrdering(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"barycentric", false},
		{"input", false},
		{"optimal", true},
		{"", true},
	}
	for _, tt := range tests {
		if err := ValidateOrdering(tt.name); (err != nil) != tt.wantErr {
			t.Errorf("ValidateOrdering(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestLayoutDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	if o.Ordering != OrderingBarycentric {
		t.Errorf("Ordering = %q", o.Ordering)
	}
	if o.Passes != ordering.DefaultPasses {
		t.Errorf("Passes = %d", o.Passes)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
	if _, ok := o.Orderer().(ordering.Barycentric); !ok {
		t.Errorf("Orderer = %T", o.Orderer())
	}

	in := Options{Ordering: OrderingInput}
	if err := in.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	if in.Passes != 0 {
		t.Errorf("input ordering should not get passes, got %d", in.Passes)
	}
	if _, ok := in.Orderer().(ordering.Input); !ok {
		t.Errorf("Orderer = %T", in.Orderer())
	}

	bad := Options{Passes: -1}
	if err := bad.ValidateForLayout(); err == nil {
		t.Error("negative passes should fail")
	}
}

func TestRenderDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", o.Formats)
	}
	if o.MeshWidth != 100 || o.MeshHeight != 100 {
		t.Errorf("mesh = %dx%d", o.MeshWidth, o.MeshHeight)
	}

	bad := Options{Formats: []string{"gif"}}
	if err := bad.ValidateForRender(); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestKeyOpts(t *testing.T) {
	a := Options{NumLayer: 4, Ordering: OrderingBarycentric, Passes: 8}
	b := a
	b.Compacted = true
	if a.LayoutKeyOpts() == b.LayoutKeyOpts() {
		t.Error("Compacted should change the layout key")
	}

	r := Options{Invert: true, Highlight: "Corvus"}
	k := r.ArtifactKeyOpts(FormatSVG)
	if k.Format != FormatSVG || !k.Invert || k.Highlight != "Corvus" {
		t.Errorf("ArtifactKeyOpts = %+v", k)
	}
}
