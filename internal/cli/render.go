package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/speich/dGraph/pkg/pipeline"
)

// renderOpts holds the render-only command-line flags. Engine flags live in
// engineFlags.
type renderOpts struct {
	output      string  // output file (single format) or base path (multiple)
	formats     string  // comma-separated output formats
	invert      bool    // draw layer 0 at the bottom
	highlight   string  // label of the node whose paths are highlighted
	showVirtual bool    // draw virtual nodes in nodelink/dot output
	meshWidth   int     // svg grid cell width
	meshHeight  int     // svg grid cell height
	gridLabel   string  // svg layer label prefix
	pngScale    float64 // png raster scale
}

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		ro    renderOpts
		flags engineFlags
	)

	cmd := &cobra.Command{
		Use:   "render [graph]",
		Short: "Render a layered graph to SVG, DOT, PDF, PNG or JSON",
		Long: `Render a layered graph.

Formats:
  svg       grid drawing with edges routed through virtual nodes
  nodelink  Graphviz drawing that keeps the computed layer and column order
  dot       the Graphviz source of the nodelink drawing
  pdf, png  the svg drawing converted with rsvg-convert
  json      the grid layout

With a single format, -o names the output file. With several formats, -o is
the base path and each file gets the format's extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags)
			if err := ro.apply(cmd, &opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, ro.output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg, nodelink, dot, pdf, png, json (comma-separated)")
	cmd.Flags().BoolVar(&ro.invert, "invert", false, "draw layer 0 at the bottom")
	cmd.Flags().StringVar(&ro.highlight, "highlight", "", "highlight the paths through the node with this label")
	cmd.Flags().BoolVar(&ro.showVirtual, "show-virtual", false, "draw virtual nodes (nodelink, dot)")
	cmd.Flags().IntVar(&ro.meshWidth, "mesh-width", 0, "grid cell width in pixels")
	cmd.Flags().IntVar(&ro.meshHeight, "mesh-height", 0, "grid cell height in pixels")
	cmd.Flags().StringVar(&ro.gridLabel, "grid-label", "", `layer label prefix in svg output (default "layer")`)
	cmd.Flags().Float64Var(&ro.pngScale, "png-scale", 0, "png raster scale")
	flags.register(cmd)

	return cmd
}

// apply overrides opts with the render flags set on the command line.
func (ro *renderOpts) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	flags := cmd.Flags()
	if flags.Changed("format") {
		opts.Formats = parseFormats(ro.formats)
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	if flags.Changed("invert") {
		opts.Invert = ro.invert
	}
	if flags.Changed("show-virtual") {
		opts.ShowVirtual = ro.showVirtual
	}
	if flags.Changed("mesh-width") {
		opts.MeshWidth = ro.meshWidth
	}
	if flags.Changed("mesh-height") {
		opts.MeshHeight = ro.meshHeight
	}
	if flags.Changed("grid-label") {
		opts.GridLabel = ro.gridLabel
	}
	if flags.Changed("png-scale") {
		opts.PNGScale = ro.pngScale
	}
	opts.Highlight = ro.highlight
	return nil
}

// runRender loads the graph, lays it out and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	data, err := runner.Load(ctx, input, opts.Refresh)
	if err != nil {
		return err
	}
	logger.Infof("Loaded graph: %d nodes, %d edges", len(data.NodeList), len(data.Edges()))

	st := startStage(logger, "render "+strings.Join(opts.Formats, ","))
	result, err := runner.Execute(ctx, data, opts)
	if err != nil {
		return err
	}
	st.done(result.Stats.Stats, result.CacheInfo.LayoutHit)

	base := basePath(output, input)
	for _, format := range opts.Formats {
		file := outputPath(base, format)
		if len(opts.Formats) == 1 && output != "" {
			file = output
		}
		if err := os.WriteFile(file, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", file, err)
		}
		printFile(file)
	}
	printStats(result.Stats.Stats, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// outputPath joins base with the file extension of format.
func outputPath(base, format string) string {
	switch format {
	case pipeline.FormatNodelink:
		return base + ".nodelink.svg"
	case pipeline.FormatJSON:
		return base + ".layout.json"
	default:
		return base + "." + format
	}
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input; a URL input uses
// the last element of its path. A known format extension on output is
// stripped.
func basePath(output, input string) string {
	if output == "" {
		if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
			input = path.Base(u.Path)
			if input == "/" || input == "." {
				input = "graph"
			}
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
