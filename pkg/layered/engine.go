package layered

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/speich/dGraph/pkg/dag"
	"github.com/speich/dGraph/pkg/dag/transform"
	"github.com/speich/dGraph/pkg/graph"
	"github.com/speich/dGraph/pkg/grid"
	"github.com/speich/dGraph/pkg/layout"
	"github.com/speich/dGraph/pkg/observability"
	"github.com/speich/dGraph/pkg/ordering"
)

// Config is the immutable engine configuration.
type Config struct {
	// NumLayer is the number of layers every graph must fit into.
	NumLayer int `json:"numLayer" toml:"num_layer"`

	// Compacted packs nodes to the left with no column gaps. When false,
	// the graph's MaxPerLayer bounds how far nodes spread.
	Compacted bool `json:"compacted" toml:"compacted"`
}

// Option customizes an Engine.
type Option func(*Engine)

// WithOrderer replaces the default [ordering.Barycentric] orderer.
func WithOrderer(o ordering.Orderer) Option {
	return func(e *Engine) {
		if o != nil {
			e.orderer = o
		}
	}
}

// WithLogger sets the logger used for debug output. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHooks sets the hooks notified around each layout. The default is the
// globally registered [observability.Layout] hooks.
func WithHooks(h observability.LayoutHooks) Option {
	return func(e *Engine) {
		if h != nil {
			e.hooks = h
		}
	}
}

// Engine lays out layered graphs and publishes the latest grid.
//
// Render may be called repeatedly, also from several goroutines. Readers of
// Grid, Nodes, and GraphWidth observe either the previous grid or the new
// one, never a partially built layout. A failed Render leaves the previous
// grid in place.
type Engine struct {
	cfg     Config
	orderer ordering.Orderer
	logger  *log.Logger
	hooks   observability.LayoutHooks
	current atomic.Pointer[grid.Grid]
}

// New creates an engine. It returns a [dag.ErrInvalidLayerCount] error if
// cfg.NumLayer is not positive.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if cfg.NumLayer <= 0 {
		return nil, fmt.Errorf("new engine: %w", dag.ErrInvalidLayerCount)
	}
	e := &Engine{
		cfg:     cfg,
		orderer: ordering.Barycentric{},
		logger:  log.New(io.Discard),
		hooks:   observability.Layout(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// NumLayer returns the configured layer count.
func (e *Engine) NumLayer() int { return e.cfg.NumLayer }

// Grid returns the last published grid, or nil before the first successful
// Render.
func (e *Engine) Grid() *grid.Grid { return e.current.Load() }

// Nodes returns the layer-major node grid of the last published layout.
// Empty columns are nil.
func (e *Engine) Nodes() [][]*grid.Node {
	if g := e.current.Load(); g != nil {
		return g.Layers
	}
	return nil
}

// GraphWidth returns the maximum column count across all layers of the last
// published layout, or 0 before the first successful Render.
func (e *Engine) GraphWidth() int {
	if g := e.current.Load(); g != nil {
		return g.GraphWidth()
	}
	return 0
}

// Render lays out data and publishes the result. See [Engine.RenderContext].
func (e *Engine) Render(data graph.Data) (*grid.Grid, error) {
	return e.RenderContext(context.Background(), data)
}

// RenderContext validates data, inserts virtual nodes, orders the layers,
// assigns columns, and atomically publishes the new grid.
//
// Validation failures are returned as [*dag.ValidationError]. A context that
// is already done is reported before any work starts; once started the
// layout runs to completion.
func (e *Engine) RenderContext(ctx context.Context, data graph.Data) (g *grid.Grid, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var stats observability.LayoutStats
	e.hooks.OnLayoutStart(ctx, len(data.NodeList), data.EdgeCount())
	defer func() {
		e.hooks.OnLayoutComplete(ctx, stats, time.Since(start), err)
	}()

	g, stats, err = e.build(data)
	if err != nil {
		e.logger.Debug("layout rejected", "err", err)
		return nil, err
	}
	e.current.Store(g)
	e.logger.Debug("layout published",
		"nodes", stats.Nodes, "virtual", stats.Virtual, "width", stats.Width,
		"crossings", stats.Crossings, "took", time.Since(start).Round(time.Microsecond))
	return g, nil
}

func (e *Engine) build(data graph.Data) (*grid.Grid, observability.LayoutStats, error) {
	var stats observability.LayoutStats

	if !e.cfg.Compacted && data.MaxPerLayer <= 0 {
		return nil, stats, &dag.ValidationError{Node: -1, Target: -1,
			Err: fmt.Errorf("%w: got %d", dag.ErrInvalidCapacity, data.MaxPerLayer)}
	}

	d, err := dag.FromData(data, e.cfg.NumLayer)
	if err != nil {
		return nil, stats, err
	}
	chains, err := transform.Subdivide(d)
	if err != nil {
		return nil, stats, fmt.Errorf("subdivide: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, stats, fmt.Errorf("subdivide: %w", err)
	}

	orders := e.orderer.OrderLayers(d)
	g := layout.Assign(d, orders, chains, layout.Options{
		Compacted:   e.cfg.Compacted,
		MaxPerLayer: data.MaxPerLayer,
	})

	stats = observability.LayoutStats{
		Nodes:     len(data.NodeList),
		Virtual:   d.VirtualCount(),
		Edges:     len(chains),
		Layers:    d.NumLayer(),
		Width:     g.GraphWidth(),
		Crossings: dag.CountCrossings(d, orders),
	}
	return g, stats, nil
}
