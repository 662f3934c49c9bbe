package nodelink

import (
	"strings"
	"testing"

	"github.com/speich/dGraph/pkg/graph"
	"github.com/speich/dGraph/pkg/grid"
	"github.com/speich/dGraph/pkg/layered"
)

func chainGrid(t *testing.T) *grid.Grid {
	t.Helper()
	e, err := layered.New(layered.Config{NumLayer: 3, Compacted: true})
	if err != nil {
		t.Fatal(err)
	}
	g, err := e.Render(graph.Data{
		NodeList: []graph.NodeSpec{{Label: "top"}, {Label: "bottom", Layer: 2}},
		AdjList:  [][]int{{1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(chainGrid(t), Options{})

	for _, want := range []string{
		`"n0_0" [label="top", pos="100,300!"]`,
		`"n2_0" [label="bottom", pos="100,100!"]`,
		`"n0_0" -> "n1_0" [arrowhead=none];`,
		`"n1_0" -> "n2_0";`,
		"style=invis",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_Options(t *testing.T) {
	dot := ToDOT(chainGrid(t), Options{Detailed: true, ShowVirtual: true, Spacing: 50})
	if !strings.Contains(dot, `layer: 0, column: 0`) {
		t.Error("detailed label missing")
	}
	if strings.Contains(dot, "style=invis") || !strings.Contains(dot, "style=dashed") {
		t.Error("virtual node style not applied")
	}
	if !strings.Contains(dot, `pos="50,150!"`) {
		t.Errorf("spacing not applied:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 10.00 20.00" width="10" height="20"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}
