package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/speich/dGraph/pkg/buildinfo"
	"github.com/speich/dGraph/pkg/cache"
	"github.com/speich/dGraph/pkg/config"
	"github.com/speich/dGraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "dgraph"

// LogInfo is the level main.go starts with, before the config is read.
const LogInfo = log.InfoLevel

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "dgraph lays out layered directed graphs on a grid",
		Long: `dgraph places the nodes of a layered directed graph on a grid so that
edges cross as little as possible, and renders the result as SVG, Graphviz
DOT, PDF, PNG or JSON.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/dgraph/dgraph.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and environment, then sets the log level.
func (c *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOptional(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}
	c.cfg = cfg

	c.SetLogLevel(logLevel(cfg.Log, c.verbose))
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.Keyer(cache.NewDefaultKeyer())
	if c.cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(keyer, c.cfg.Cache.Prefix)
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// openCache opens the configured backend. A file cache that cannot be
// created degrades to no caching; remote backends must be reachable.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	store, err := cache.Open(ctx, c.cfg.Cache)
	if err != nil {
		switch c.cfg.Cache.Backend {
		case "", cache.BackendFile:
			c.Logger.Warn("file cache unavailable, continuing without cache", "err", err)
			return cache.NewNullCache(), nil
		}
		return nil, fmt.Errorf("open %s cache: %w", c.cfg.Cache.Backend, err)
	}
	return store, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// engineFlags are the layout flags shared by every command that lays out a
// graph. Only flags set on the command line override the config file.
type engineFlags struct {
	numLayer  int
	compacted bool
	ordering  string
	passes    int
	noCache   bool
	refresh   bool
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.numLayer, "num-layer", "n", 0, "number of layers (default: from config or graph file)")
	cmd.Flags().BoolVar(&f.compacted, "compacted", false, "pack each layer into the leftmost columns")
	cmd.Flags().StringVar(&f.ordering, "ordering", pipeline.DefaultOrdering, "ordering algorithm: barycentric, input, exhaustive")
	cmd.Flags().IntVar(&f.passes, "passes", 0, "barycentric sweep passes (default 8)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if cached")
}

// options builds pipeline options from the config and the changed flags.
func (c *CLI) options(cmd *cobra.Command, f *engineFlags) pipeline.Options {
	opts := c.cfg.PipelineOptions(0)
	flags := cmd.Flags()
	if flags.Changed("num-layer") {
		opts.NumLayer = f.numLayer
	}
	if flags.Changed("compacted") {
		opts.Compacted = f.compacted
	}
	if flags.Changed("ordering") {
		opts.Ordering = f.ordering
	}
	if flags.Changed("passes") {
		opts.Passes = f.passes
	}
	opts.Refresh = f.refresh
	opts.Logger = c.Logger
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
