package layered

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/speich/dGraph/pkg/dag"
	"github.com/speich/dGraph/pkg/graph"
	"github.com/speich/dGraph/pkg/grid"
	"github.com/speich/dGraph/pkg/observability"
	"github.com/speich/dGraph/pkg/ordering"
	"github.com/speich/dGraph/pkg/pathfind"
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

func mustEngine(t *testing.T, cfg Config, opts ...Option) *Engine {
	t.Helper()
	e, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func labelsIn(g *grid.Grid, layer int) map[string]int {
	out := map[string]int{}
	for _, n := range g.Layer(layer) {
		if n.Virtual {
			out["<virtual>"]++
		} else {
			out[n.Label]++
		}
	}
	return out
}

func TestNew_InvalidLayerCount(t *testing.T) {
	if _, err := New(Config{NumLayer: 0}); !errors.Is(err, dag.ErrInvalidLayerCount) {
		t.Errorf("New error = %v, want ErrInvalidLayerCount", err)
	}
}

func TestRender_Birds(t *testing.T) {
	for _, compacted := range []bool{true, false} {
		e := mustEngine(t, Config{NumLayer: 4, Compacted: compacted})
		g, err := e.Render(birds())
		if err != nil {
			t.Fatalf("compacted=%v: Render: %v", compacted, err)
		}
		if e.Grid() != g {
			t.Error("Render result is not the published grid")
		}
		if e.GraphWidth() != 3 {
			t.Errorf("compacted=%v: GraphWidth = %d, want 3", compacted, e.GraphWidth())
		}
		if e.NumLayer() != 4 || len(e.Nodes()) != 4 {
			t.Errorf("layers = %d/%d, want 4", e.NumLayer(), len(e.Nodes()))
		}

		want := []map[string]int{
			{"Rubecula": 1, "Parus": 1},
			{"Corvus": 1, "Falco": 1, "<virtual>": 1},
			{"Cathartes": 1, "<virtual>": 1}, // Corvus -> Turdus passes layer 2
			{"Turdus": 1},
		}
		for l, w := range want {
			got := labelsIn(g, l)
			if len(got) != len(w) {
				t.Errorf("layer %d = %v, want %v", l, got, w)
				continue
			}
			for k, v := range w {
				if got[k] != v {
					t.Errorf("layer %d = %v, want %v", l, got, w)
				}
			}
		}

		// The virtual node in layer 1 belongs to Rubecula -> Cathartes.
		for _, n := range g.Layer(1) {
			if n.Virtual && g.At(n.Targets[0]).Label != "Cathartes" {
				t.Errorf("virtual node in layer 1 leads to %q", g.At(n.Targets[0]).Label)
			}
		}
	}
}

func TestRender_Properties(t *testing.T) {
	e := mustEngine(t, Config{NumLayer: 4})
	g, err := e.Render(birds())
	if err != nil {
		t.Fatal(err)
	}

	for n := range g.All() {
		seen := map[int]bool{}
		for _, c := range g.Layers[n.Layer] {
			if c == nil {
				continue
			}
			if seen[c.Column] {
				t.Errorf("column %d reused in layer %d", c.Column, n.Layer)
			}
			seen[c.Column] = true
		}
		for _, tc := range n.Targets {
			if tc.Layer != n.Layer+1 {
				t.Errorf("%v -> %v is not a single-layer edge", n.Coord(), tc)
			}
			found := false
			for _, sc := range g.At(tc).Sources {
				found = found || sc == n.Coord()
			}
			if !found {
				t.Errorf("%v -> %v missing from target sources", n.Coord(), tc)
			}
		}
	}

	// One chain per logical edge, length equal to the layer span.
	data := birds()
	if len(g.Chains) != data.EdgeCount() {
		t.Fatalf("chains = %d, want %d", len(g.Chains), data.EdgeCount())
	}
	for i, e := range data.Edges() {
		span := data.NodeList[e.To].Layer - data.NodeList[e.From].Layer
		if got := len(g.Chains[i].Path) - 1; got != span {
			t.Errorf("chain %d has %d physical edges, want %d", i, got, span)
		}
	}
}

func TestRender_ReachabilityPreserved(t *testing.T) {
	e := mustEngine(t, Config{NumLayer: 4, Compacted: true})
	g, err := e.Render(birds())
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]bool{}
	for _, n := range pathfind.Reachable(g, g.Find("Rubecula")) {
		got[n.Label] = true
	}
	for _, want := range []string{"Corvus", "Falco", "Cathartes", "Turdus"} {
		if !got[want] {
			t.Errorf("%s not reachable from Rubecula", want)
		}
	}
	if got["Parus"] {
		t.Error("Parus reachable from Rubecula")
	}
}

// randomDAG builds a layered graph with 1-4 nodes per layer and edges that
// only point to lower layers, some of them spanning several layers.
func randomDAG(seed uint64) graph.Data {
	r := rand.New(rand.NewPCG(seed, 0))
	data := graph.Data{NumLayer: 2 + r.IntN(4), MaxPerLayer: 1 + r.IntN(4)}
	for l := range data.NumLayer {
		for range 1 + r.IntN(4) {
			data.NodeList = append(data.NodeList, graph.NodeSpec{Label: fmt.Sprintf("n%d", len(data.NodeList)), Layer: l})
		}
	}
	data.AdjList = make([][]int, len(data.NodeList))
	for i, from := range data.NodeList {
		for j, to := range data.NodeList {
			if to.Layer > from.Layer && r.IntN(3) == 0 {
				data.AdjList[i] = append(data.AdjList[i], j)
			}
		}
	}
	return data
}

// closure returns the node list indices reachable from i along data edges.
func closure(data graph.Data, i int) map[int]bool {
	seen := map[int]bool{}
	stack := append([]int(nil), data.AdjList[i]...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, data.AdjList[n]...)
	}
	return seen
}

func TestRender_RandomGraphs(t *testing.T) {
	orderers := []struct {
		name string
		o    ordering.Orderer
	}{
		{"input", ordering.Input{}},
		{"barycentric", ordering.Barycentric{}},
		{"exhaustive", ordering.Exhaustive{}},
	}
	for seed := range uint64(40) {
		data := randomDAG(seed)
		for _, compacted := range []bool{true, false} {
			for _, oc := range orderers {
				name := fmt.Sprintf("seed%d/compacted=%v/%s", seed, compacted, oc.name)
				t.Run(name, func(t *testing.T) {
					checkRandomLayout(t, data, Config{NumLayer: data.NumLayer, Compacted: compacted}, oc.o)
				})
			}
		}
	}
}

func checkRandomLayout(t *testing.T, data graph.Data, cfg Config, o ordering.Orderer) {
	t.Helper()
	e := mustEngine(t, cfg, WithOrderer(o))
	g, err := e.Render(data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	widest := 0
	for l, row := range g.Layers {
		count := 0
		for c, n := range row {
			if n == nil {
				continue
			}
			count++
			if n.Column != c || n.Layer != l {
				t.Errorf("cell (%d,%d) holds node at %v", c, l, n.Coord())
			}
			if c >= g.Width {
				t.Errorf("column %d in layer %d not below width %d", c, l, g.Width)
			}
		}
		if cfg.Compacted && count != len(row) {
			t.Errorf("compacted layer %d has gaps", l)
		}
		widest = max(widest, count)
	}
	if g.Width != widest || e.GraphWidth() != widest {
		t.Errorf("width = %d, GraphWidth = %d, want widest layer %d", g.Width, e.GraphWidth(), widest)
	}

	for n := range g.All() {
		for _, tc := range n.Targets {
			if tc.Layer != n.Layer+1 {
				t.Errorf("%v -> %v spans more than one layer", n.Coord(), tc)
			}
			if m := g.At(tc); m == nil || !slices.Contains(m.Sources, n.Coord()) {
				t.Errorf("%v -> %v missing from target sources", n.Coord(), tc)
			}
		}
		for _, sc := range n.Sources {
			if m := g.At(sc); m == nil || !slices.Contains(m.Targets, n.Coord()) {
				t.Errorf("%v <- %v missing from source targets", n.Coord(), sc)
			}
		}
	}
	if len(g.Chains) != data.EdgeCount() {
		t.Errorf("chains = %d, want %d", len(g.Chains), data.EdgeCount())
	}

	for i, spec := range data.NodeList {
		var start *grid.Node
		for _, n := range g.Layer(spec.Layer) {
			if !n.Virtual && n.Index == i {
				start = n
			}
		}
		if start == nil {
			t.Fatalf("node %s missing from layer %d", spec.Label, spec.Layer)
		}
		got := map[int]bool{}
		for _, n := range pathfind.Reachable(g, start) {
			got[n.Index] = true
		}
		want := closure(data, i)
		if len(got) != len(want) {
			t.Errorf("%s reaches %v, want %v", spec.Label, got, want)
			continue
		}
		for j := range want {
			if !got[j] {
				t.Errorf("%s does not reach %s", spec.Label, data.NodeList[j].Label)
			}
		}
	}

	var first, again bytes.Buffer
	if err := grid.Write(&first, g); err != nil {
		t.Fatal(err)
	}
	g2, err := mustEngine(t, cfg, WithOrderer(o)).Render(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := grid.Write(&again, g2); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), again.Bytes()) {
		t.Error("two runs on the same graph produced different grids")
	}
}

func TestRender_Deterministic(t *testing.T) {
	e := mustEngine(t, Config{NumLayer: 4})
	first, err := e.Render(birds())
	if err != nil {
		t.Fatal(err)
	}
	for range 3 {
		again, err := e.Render(birds())
		if err != nil {
			t.Fatal(err)
		}
		for l := range first.Layers {
			if len(first.Layers[l]) != len(again.Layers[l]) {
				t.Fatalf("layer %d length differs", l)
			}
			for c := range first.Layers[l] {
				a, b := first.Layers[l][c], again.Layers[l][c]
				if (a == nil) != (b == nil) || (a != nil && (a.Label != b.Label || a.Edge != b.Edge)) {
					t.Errorf("cell (%d,%d) differs", c, l)
				}
			}
		}
	}
}

func TestRender_FailureKeepsPreviousGrid(t *testing.T) {
	e := mustEngine(t, Config{NumLayer: 4})
	if e.Grid() != nil || e.GraphWidth() != 0 || e.Nodes() != nil {
		t.Fatal("fresh engine exposes a grid")
	}
	good, err := e.Render(birds())
	if err != nil {
		t.Fatal(err)
	}

	bad := birds()
	bad.AdjList[2] = []int{99}
	_, err = e.Render(bad)
	var verr *dag.ValidationError
	if !errors.As(err, &verr) || !errors.Is(err, dag.ErrUnknownTargetNode) {
		t.Fatalf("Render error = %v, want ValidationError(ErrUnknownTargetNode)", err)
	}
	if verr.Node != 2 || verr.Target != 99 {
		t.Errorf("ValidationError = %+v", verr)
	}
	if e.Grid() != good {
		t.Error("failed render replaced the published grid")
	}
}

func TestRender_Validation(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		mutate func(*graph.Data)
		want   error
	}{
		{"LayerOutOfRange", Config{NumLayer: 4}, func(d *graph.Data) { d.NodeList[0].Layer = 4 }, dag.ErrLayerOutOfRange},
		{"NegativeLayer", Config{NumLayer: 4}, func(d *graph.Data) { d.NodeList[0].Layer = -1 }, dag.ErrLayerOutOfRange},
		{"ReverseEdge", Config{NumLayer: 4}, func(d *graph.Data) { d.AdjList[1] = []int{0} }, dag.ErrReverseEdge},
		{"SameLayer", Config{NumLayer: 4}, func(d *graph.Data) { d.AdjList[0] = []int{5} }, dag.ErrSameLayerEdge},
		{"LayerCountMismatch", Config{NumLayer: 5}, func(*graph.Data) {}, dag.ErrLayerCountMismatch},
		{"ZeroCapacity", Config{NumLayer: 4}, func(d *graph.Data) { d.MaxPerLayer = 0 }, dag.ErrInvalidCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustEngine(t, tt.cfg)
			data := birds()
			tt.mutate(&data)
			if _, err := e.Render(data); !errors.Is(err, tt.want) {
				t.Errorf("Render error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRender_ZeroCapacityCompacted(t *testing.T) {
	e := mustEngine(t, Config{NumLayer: 4, Compacted: true})
	data := birds()
	data.MaxPerLayer = 0
	if _, err := e.Render(data); err != nil {
		t.Errorf("compacted engine rejected maxPerLayer 0: %v", err)
	}
}

func TestRender_CancelledContext(t *testing.T) {
	e := mustEngine(t, Config{NumLayer: 4})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.RenderContext(ctx, birds()); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if e.Grid() != nil {
		t.Error("cancelled render published a grid")
	}
}

type recordingHooks struct {
	observability.NoopLayoutHooks
	mu     sync.Mutex
	starts int
	stats  []observability.LayoutStats
	errs   []error
}

func (h *recordingHooks) OnLayoutStart(context.Context, int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts++
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, s observability.LayoutStats, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats = append(h.stats, s)
	h.errs = append(h.errs, err)
}

func TestRender_Hooks(t *testing.T) {
	hooks := &recordingHooks{}
	e := mustEngine(t, Config{NumLayer: 4}, WithHooks(hooks), WithOrderer(ordering.Input{}))

	if _, err := e.Render(birds()); err != nil {
		t.Fatal(err)
	}
	bad := birds()
	bad.NodeList[0].Layer = 9
	_, _ = e.Render(bad)

	if hooks.starts != 2 || len(hooks.stats) != 2 {
		t.Fatalf("hooks saw %d starts, %d completions", hooks.starts, len(hooks.stats))
	}
	s := hooks.stats[0]
	if s.Nodes != 6 || s.Virtual != 2 || s.Edges != 5 || s.Width != 3 || s.Layers != 4 {
		t.Errorf("stats = %+v", s)
	}
	if s.Crossings != 3 {
		t.Errorf("crossings with input order = %d, want 3", s.Crossings)
	}
	if hooks.errs[0] != nil || hooks.errs[1] == nil {
		t.Errorf("errs = %v", hooks.errs)
	}
}

func TestRender_ConcurrentReaders(t *testing.T) {
	e := mustEngine(t, Config{NumLayer: 4})
	small := graph.Data{
		MaxPerLayer: 1,
		NodeList:    []graph.NodeSpec{{Label: "a"}, {Label: "b", Layer: 3}},
		AdjList:     [][]int{{1}},
	}
	if _, err := e.Render(small); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				g := e.Grid()
				// Width and layers come from the same grid value.
				widest := 0
				for _, row := range g.Layers {
					count := 0
					for _, n := range row {
						if n != nil {
							count++
						}
					}
					widest = max(widest, count)
				}
				if widest != g.GraphWidth() {
					t.Errorf("torn grid: width %d, widest layer %d", g.GraphWidth(), widest)
					return
				}
			}
		}()
	}
	for i := range 50 {
		data := birds()
		if i%2 == 0 {
			data = small
		}
		if _, err := e.Render(data); err != nil {
			t.Error(err)
		}
	}
	close(stop)
	wg.Wait()
}
