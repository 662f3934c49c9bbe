package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/speich/dGraph/pkg/cache"
	dgerrors "github.com/speich/dGraph/pkg/errors"
	"github.com/speich/dGraph/pkg/graph"
	"github.com/speich/dGraph/pkg/grid"
	"github.com/speich/dGraph/pkg/httputil"
	"github.com/speich/dGraph/pkg/layered"
	"github.com/speich/dGraph/pkg/observability"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state; several goroutines may use one Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	fetcher *httputil.Client
	backend string
}

// NewRunner creates a runner. A nil keyer uses [cache.DefaultKeyer], a nil
// cache disables caching and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		fetcher: httputil.NewClient(c, nil),
		backend: cache.BackendName(c),
	}
}

// Load reads graph data from source, which is either a local file path or an
// http(s) URL. The format follows the file extension.
func (r *Runner) Load(ctx context.Context, source string, refresh bool) (graph.Data, error) {
	u, err := url.Parse(source)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		data, err := graph.ReadFile(source)
		if errors.Is(err, fs.ErrNotExist) {
			return graph.Data{}, dgerrors.Wrap(dgerrors.ErrCodeFileNotFound, err, "read %s", source)
		}
		if err != nil {
			return graph.Data{}, dgerrors.Wrap(dgerrors.ErrCodeInvalidInput, err, "read %s", source)
		}
		return data, nil
	}

	format, err := graph.FormatFromPath(u.Path)
	if err != nil {
		return graph.Data{}, dgerrors.Wrap(dgerrors.ErrCodeInvalidFormat, err, "source %s", source)
	}
	body, err := r.fetcher.Fetch(ctx, source, refresh)
	if errors.Is(err, cache.ErrNotFound) {
		return graph.Data{}, dgerrors.Wrap(dgerrors.ErrCodeNotFound, err, "fetch %s", source)
	}
	if err != nil {
		return graph.Data{}, dgerrors.Wrap(dgerrors.ErrCodeInternal, err, "fetch %s", source)
	}
	data, err := graph.Read(bytes.NewReader(body), format)
	if err != nil {
		return graph.Data{}, dgerrors.Wrap(dgerrors.ErrCodeInvalidInput, err, "parse %s", source)
	}
	r.Logger.Debug("fetched graph", "url", source, "bytes", len(body))
	return data, nil
}

// Execute runs layout and render with caching.
func (r *Runner) Execute(ctx context.Context, data graph.Data, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	result := &Result{}

	layoutStart := time.Now()
	g, layoutHit, err := r.LayoutWithCacheInfo(ctx, data, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Grid = g
	result.GraphHash = graphHash(data)
	result.Stats.Stats = g.Stats()
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", result.Stats.Nodes,
		"virtual", result.Stats.Virtual,
		"width", result.Stats.Width,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo lays out data and reports whether the grid came from
// the cache. A zero opts.NumLayer takes the layer count declared by data.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, data graph.Data, opts Options) (*grid.Grid, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, dgerrors.Wrap(dgerrors.ErrCodeInvalidConfig, err, "layout options")
	}
	r.applyLogger(&opts)
	if opts.NumLayer == 0 {
		opts.NumLayer = data.NumLayer
	}

	key := r.Keyer.LayoutKey(graphHash(data), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if raw, hit := r.get(ctx, key); hit {
			if g, err := grid.Read(bytes.NewReader(raw)); err == nil {
				return g, true, nil
			}
			// Undecodable entry: recompute.
		}
	}

	engine, err := layered.New(
		layered.Config{NumLayer: opts.NumLayer, Compacted: opts.Compacted},
		layered.WithOrderer(opts.Orderer()),
		layered.WithLogger(opts.Logger),
	)
	if err != nil {
		return nil, false, dgerrors.FromValidation(err)
	}
	g, err := engine.RenderContext(ctx, data)
	if err != nil {
		return nil, false, dgerrors.FromValidation(err)
	}

	var buf bytes.Buffer
	if err := grid.Write(&buf, g); err == nil {
		r.set(ctx, key, buf.Bytes(), cache.TTLLayout)
	}
	return g, false, nil
}

// Layout is LayoutWithCacheInfo without the cache hit flag.
func (r *Runner) Layout(ctx context.Context, data graph.Data, opts Options) (*grid.Grid, error) {
	g, _, err := r.LayoutWithCacheInfo(ctx, data, opts)
	return g, err
}

// RenderWithCacheInfo renders g in every requested format and reports
// whether all artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *grid.Grid, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, dgerrors.Wrap(dgerrors.ErrCodeInvalidFormat, err, "render options")
	}
	r.applyLogger(&opts)

	var buf bytes.Buffer
	if err := grid.Write(&buf, g); err != nil {
		return nil, false, fmt.Errorf("serialize grid for cache key: %w", err)
	}
	layoutHash := cache.Hash(buf.Bytes())

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit := r.get(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)))
			if !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := RenderGrid(ctx, g, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.set(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the cache hit flag.
func (r *Runner) Render(ctx context.Context, g *grid.Grid, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) get(ctx context.Context, key string) ([]byte, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache get failed", "backend", r.backend, "err", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, r.backend)
		return nil, false
	}
	hooks.OnCacheHit(ctx, r.backend)
	return data, true
}

func (r *Runner) set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	err := cache.Retry(ctx, 2, 100*time.Millisecond, func() error {
		return r.Cache.Set(ctx, key, data, ttl)
	})
	if err != nil {
		r.Logger.Warn("cache set failed", "backend", r.backend, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, r.backend, len(data))
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// graphHash hashes the canonical JSON encoding of data.
func graphHash(data graph.Data) string {
	raw, err := graph.Marshal(data)
	if err != nil {
		return ""
	}
	return cache.Hash(raw)
}
