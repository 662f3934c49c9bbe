package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/speich/dGraph/pkg/grid"
	"github.com/speich/dGraph/pkg/pathfind"
	"github.com/speich/dGraph/pkg/pipeline"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// viewCommand creates the view command, an interactive grid browser.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		start string
		flags engineFlags
	)

	cmd := &cobra.Command{
		Use:   "view [graph]",
		Short: "Browse a layout interactively and highlight node paths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0], start, c.options(cmd, &flags), flags.noCache)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "label of the initially selected node")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runView(ctx context.Context, input, start string, opts pipeline.Options, noCache bool) error {
	g, cached, err := c.loadGrid(ctx, input, opts, noCache)
	if err != nil {
		return err
	}

	m := NewGridModel(g, cached)
	if start != "" {
		if n := g.Find(start); n != nil {
			m = m.selectNode(n)
		}
	}
	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// GridModel - Interactive grid browser
// =============================================================================

// GridModel is the bubbletea model of the grid browser. The cursor always
// rests on a real node; the paths through it are highlighted.
type GridModel struct {
	Grid      *grid.Grid
	Cursor    *grid.Node
	Highlight *pathfind.Highlight
	Cached    bool
}

// NewGridModel selects the first real node of the top-most non-empty layer.
func NewGridModel(g *grid.Grid, cached bool) GridModel {
	m := GridModel{Grid: g, Cached: cached}
	for n := range g.All() {
		if !n.Virtual {
			return m.selectNode(n)
		}
	}
	return m
}

func (m GridModel) selectNode(n *grid.Node) GridModel {
	m.Cursor = n
	m.Highlight = pathfind.NewHighlight(m.Grid, n)
	return m
}

func (m GridModel) Init() tea.Cmd {
	return nil
}

func (m GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		return m.moveColumn(-1), nil
	case "right", "l":
		return m.moveColumn(1), nil
	case "up", "k":
		return m.moveLayer(-1), nil
	case "down", "j":
		return m.moveLayer(1), nil
	}
	return m, nil
}

// moveColumn moves to the next real node in the cursor's layer.
func (m GridModel) moveColumn(step int) GridModel {
	if m.Cursor == nil {
		return m
	}
	row := m.Grid.Layers[m.Cursor.Layer]
	for col := m.Cursor.Column + step; col >= 0 && col < len(row); col += step {
		if n := row[col]; n != nil && !n.Virtual {
			return m.selectNode(n)
		}
	}
	return m
}

// moveLayer moves to the real node closest to the cursor's column in the
// next layer that has one.
func (m GridModel) moveLayer(step int) GridModel {
	if m.Cursor == nil {
		return m
	}
	for layer := m.Cursor.Layer + step; layer >= 0 && layer < m.Grid.NumLayer; layer += step {
		var best *grid.Node
		for _, n := range m.Grid.Layer(layer) {
			if n.Virtual {
				continue
			}
			if best == nil || abs(n.Column-m.Cursor.Column) < abs(best.Column-m.Cursor.Column) {
				best = n
			}
		}
		if best != nil {
			return m.selectNode(best)
		}
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (m GridModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout"))
	b.WriteString(statsLine(m.Grid.Stats(), m.Cached))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→/↑/↓ select node  q quit"))
	b.WriteString("\n\n")
	b.WriteString(gridTable(m.Grid, m.Highlight))
	b.WriteString("\n\n")

	if m.Cursor != nil {
		down := labels(pathfind.Reachable(m.Grid, m.Cursor))
		up := labels(upstream(m.Grid, m.Cursor))
		fmt.Fprintf(&b, "%s %s\n", styleCellSelected.Render(m.Cursor.Label), listDimStyle.Render(m.Cursor.Coord().String()))
		fmt.Fprintf(&b, "  %s %s\n", styleCellTarget.Render("downstream"), listOrDash(down))
		fmt.Fprintf(&b, "  %s %s\n", styleCellSource.Render("upstream  "), listOrDash(up))
	}
	return b.String()
}
