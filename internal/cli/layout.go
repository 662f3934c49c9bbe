package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	dgerrors "github.com/speich/dGraph/pkg/errors"
	"github.com/speich/dGraph/pkg/grid"
	"github.com/speich/dGraph/pkg/pipeline"
)

// layoutCommand creates the layout command for computing grid layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		showTable bool
		flags     engineFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [graph]",
		Short: "Compute the grid layout of a layered graph",
		Long: `Compute the grid layout of a layered graph.

The input is a graph document (JSON, TOML or YAML) given as a file path or
an http(s) URL. The output is the grid as JSON: every node with its layer,
column and edge coordinates, plus the virtual node chain of each long edge.
Use "-o -" to write to stdout.

Results are cached, so re-running with the same graph and options is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], c.options(cmd, &flags), output, flags.noCache, showTable)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&showTable, "table", false, "print the grid as a table")
	flags.register(cmd)

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache, showTable bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	data, err := runner.Load(ctx, input, opts.Refresh)
	if err != nil {
		return err
	}

	st := startStage(c.Logger, "layout")
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	g, cacheHit, err := runner.LayoutWithCacheInfo(ctx, data, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	st.done(g.Stats(), cacheHit)

	if output == "-" {
		return grid.Write(os.Stdout, g)
	}
	if output == "" {
		output = basePath("", input) + layoutSuffix
	}
	if err := grid.WriteFile(output, g); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(g.Stats(), cacheHit)
	if showTable {
		printNewline()
		fmt.Println(gridTable(g, nil))
	}
	printNewline()
	printNextStep("Render", appName+" render "+input)
	printNextStep("Browse", appName+" view "+output)

	return nil
}

// layoutSuffix marks a grid written by the layout command. path and view
// read such files directly instead of laying the graph out again.
const layoutSuffix = ".layout.json"

// loadGrid returns the grid of input. A *.layout.json file is decoded as is;
// anything else is loaded as a graph document and laid out with opts.
func (c *CLI) loadGrid(ctx context.Context, input string, opts pipeline.Options, noCache bool) (*grid.Grid, bool, error) {
	if strings.HasSuffix(input, layoutSuffix) {
		g, err := grid.ReadFile(input)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, false, dgerrors.Wrap(dgerrors.ErrCodeFileNotFound, err, "read layout %s", input)
		case err != nil:
			return nil, false, dgerrors.Wrap(dgerrors.ErrCodeInvalidInput, err, "read layout %s", input)
		}
		c.Logger.Debug("read layout file", "path", input)
		return g, true, nil
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, false, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	data, err := runner.Load(ctx, input, opts.Refresh)
	if err != nil {
		return nil, false, err
	}
	return runner.LayoutWithCacheInfo(ctx, data, opts)
}
