package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	dgerrors "github.com/speich/dGraph/pkg/errors"
	"github.com/speich/dGraph/pkg/grid"
	"github.com/speich/dGraph/pkg/pathfind"
	"github.com/speich/dGraph/pkg/pipeline"
)

// pathCommand creates the path command, which lists the nodes connected to
// a node through target and source edges.
func (c *CLI) pathCommand() *cobra.Command {
	var (
		asJSON    bool
		showTable bool
		flags     engineFlags
	)

	cmd := &cobra.Command{
		Use:   "path [graph] [label]",
		Short: "Show everything downstream and upstream of a node",
		Long: `Show everything downstream and upstream of a node.

The graph is a graph document, laid out on the fly, or a grid previously
written by "dgraph layout" (a *.layout.json file), which is used as is.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPath(cmd.Context(), args[0], args[1], c.options(cmd, &flags), flags.noCache, asJSON, showTable)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the highlight as JSON")
	cmd.Flags().BoolVar(&showTable, "table", false, "print the grid with the paths colored")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runPath(ctx context.Context, input, label string, opts pipeline.Options, noCache, asJSON, showTable bool) error {
	if err := dgerrors.ValidateLabel(label); err != nil {
		return err
	}

	st := startStage(c.Logger, "path")
	g, cached, err := c.loadGrid(ctx, input, opts, noCache)
	if err != nil {
		return err
	}
	st.done(g.Stats(), cached)

	start := g.Find(label)
	if start == nil {
		return dgerrors.New(dgerrors.ErrCodeNodeNotFound, "node %q not found", label)
	}
	h := pathfind.NewHighlight(g, start)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(h)
	}

	down := labels(pathfind.Reachable(g, start))
	up := labels(upstream(g, start))

	fmt.Println(StyleTitle.Render(label) + " " + StyleDim.Render(start.Coord().String()))
	printKeyValue("downstream", listOrDash(down))
	printKeyValue("upstream", listOrDash(up))
	if showTable {
		printNewline()
		fmt.Println(gridTable(g, h))
	}
	return nil
}

// upstream returns the real nodes that reach start, in BFS order.
func upstream(g *grid.Grid, start *grid.Node) []*grid.Node {
	seen := map[grid.Coord]bool{}
	var out []*grid.Node
	pathfind.SearchBySources(g, start, func(_, src *grid.Node) {
		if !src.Virtual && !seen[src.Coord()] {
			seen[src.Coord()] = true
			out = append(out, src)
		}
	})
	return out
}

func labels(nodes []*grid.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label
	}
	return out
}

func listOrDash(s []string) string {
	if len(s) == 0 {
		return "—"
	}
	return strings.Join(s, ", ")
}
