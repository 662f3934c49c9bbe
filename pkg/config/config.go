// Package config loads dgraph settings from a TOML file.
//
// The file has one table per concern:
//
//	[engine]
//	num_layer = 4
//	compacted = false
//	ordering = "barycentric"
//
//	[render]
//	formats = ["svg"]
//	mesh_width = 100
//
//	[cache]
//	backend = "redis"
//	url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
//
//	[log]
//	level = "info"
//
// Unset keys keep the values of [Default]. Environment variables named in
// [Config.ApplyEnv] override the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/speich/dGraph/pkg/cache"
	dgerrors "github.com/speich/dGraph/pkg/errors"
	"github.com/speich/dGraph/pkg/pipeline"
)

// FileName is the configuration file looked up by [DefaultPath].
const FileName = "dgraph.toml"

// Config is the complete dgraph configuration.
type Config struct {
	Engine EngineConfig  `toml:"engine"`
	Render RenderConfig  `toml:"render"`
	Cache  cache.Options `toml:"cache"`
	Server ServerConfig  `toml:"server"`
	Log    LogConfig     `toml:"log"`
}

// EngineConfig holds layout settings.
type EngineConfig struct {
	NumLayer  int    `toml:"num_layer"`
	Compacted bool   `toml:"compacted"`
	Ordering  string `toml:"ordering"`
	Passes    int    `toml:"passes"`
}

// RenderConfig holds output settings.
type RenderConfig struct {
	Formats     []string `toml:"formats"`
	Invert      bool     `toml:"invert"`
	MeshWidth   int      `toml:"mesh_width"`
	MeshHeight  int      `toml:"mesh_height"`
	GridLabel   string   `toml:"grid_label"`
	ShowVirtual bool     `toml:"show_virtual"`
	PNGScale    float64  `toml:"png_scale"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
	// Metrics exposes Prometheus metrics on /metrics.
	Metrics bool `toml:"metrics"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			Ordering: pipeline.DefaultOrdering,
		},
		Render: RenderConfig{
			Formats:    []string{pipeline.FormatSVG},
			MeshWidth:  100,
			MeshHeight: 100,
			PNGScale:   2,
		},
		Cache: cache.Options{Backend: cache.BackendFile},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 4 << 20,
			Metrics:      true,
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/dgraph/dgraph.toml, falling back to
// ~/.config/dgraph/dgraph.toml.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dgraph", FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dgraph", FileName), nil
}

// Load reads path on top of [Default] and validates the result. Unknown keys
// are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, dgerrors.Wrap(dgerrors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, dgerrors.New(dgerrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOptional is like [Load] but returns [Default] when path does not exist.
// An empty path means [DefaultPath].
func LoadOptional(path string) (Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return Default(), nil
		}
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// ApplyEnv overrides settings from environment variables:
//
//	DGRAPH_ADDR           server.addr
//	DGRAPH_NUM_LAYER      engine.num_layer
//	DGRAPH_CACHE_BACKEND  cache.backend
//	DGRAPH_CACHE_URL      cache.url
//	DGRAPH_LOG_LEVEL      log.level
//
// getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("DGRAPH_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := getenv("DGRAPH_NUM_LAYER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return dgerrors.Wrap(dgerrors.ErrCodeInvalidConfig, err, "DGRAPH_NUM_LAYER")
		}
		c.Engine.NumLayer = n
	}
	if v := getenv("DGRAPH_CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := getenv("DGRAPH_CACHE_URL"); v != "" {
		c.Cache.URL = v
	}
	if v := getenv("DGRAPH_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return c.Validate()
}

// Validate checks the configuration. A zero engine.num_layer is allowed;
// the layer count then comes from each graph document.
func (c *Config) Validate() error {
	if c.Engine.NumLayer < 0 {
		return dgerrors.New(dgerrors.ErrCodeInvalidConfig, "engine.num_layer must not be negative")
	}
	if err := pipeline.ValidateOrdering(c.Engine.Ordering); err != nil {
		return dgerrors.Wrap(dgerrors.ErrCodeInvalidConfig, err, "engine.ordering")
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return dgerrors.Wrap(dgerrors.ErrCodeInvalidConfig, err, "render.formats")
	}
	if c.Render.MeshWidth <= 0 || c.Render.MeshHeight <= 0 {
		return dgerrors.New(dgerrors.ErrCodeInvalidConfig, "render mesh size must be positive")
	}

	switch c.Cache.Backend {
	case "", cache.BackendNone, cache.BackendFile:
	case cache.BackendRedis:
		if err := dgerrors.ValidateURL(c.Cache.URL, "redis", "rediss"); err != nil {
			return fmt.Errorf("cache.url: %w", err)
		}
	case cache.BackendMongo:
		if err := dgerrors.ValidateURL(c.Cache.URL, "mongodb", "mongodb+srv"); err != nil {
			return fmt.Errorf("cache.url: %w", err)
		}
		if c.Cache.Database == "" {
			return dgerrors.New(dgerrors.ErrCodeInvalidConfig, "cache.database is required for mongo")
		}
	default:
		return dgerrors.New(dgerrors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}

	if c.Server.Addr == "" {
		return dgerrors.New(dgerrors.ErrCodeInvalidConfig, "server.addr cannot be empty")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.MaxBodyBytes < 0 {
		return dgerrors.New(dgerrors.ErrCodeInvalidConfig, "server limits must not be negative")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return dgerrors.New(dgerrors.ErrCodeInvalidConfig, "unknown log level %q", c.Log.Level)
	}
	return nil
}

// PipelineOptions converts the engine and render tables into pipeline
// options. numLayer overrides engine.num_layer when positive.
func (c *Config) PipelineOptions(numLayer int) pipeline.Options {
	if numLayer <= 0 {
		numLayer = c.Engine.NumLayer
	}
	return pipeline.Options{
		NumLayer:    numLayer,
		Compacted:   c.Engine.Compacted,
		Ordering:    c.Engine.Ordering,
		Passes:      c.Engine.Passes,
		Formats:     append([]string(nil), c.Render.Formats...),
		Invert:      c.Render.Invert,
		MeshWidth:   c.Render.MeshWidth,
		MeshHeight:  c.Render.MeshHeight,
		GridLabel:   c.Render.GridLabel,
		ShowVirtual: c.Render.ShowVirtual,
		PNGScale:    c.Render.PNGScale,
	}
}
