package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/speich/dGraph/pkg/grid"
	"github.com/speich/dGraph/pkg/pathfind"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorOrange = lipgloss.Color("209") // Orange - upstream paths
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	// Grid cells
	styleCellSelected = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleCellTarget   = lipgloss.NewStyle().Foreground(colorGreen)
	styleCellSource   = lipgloss.NewStyle().Foreground(colorOrange)
	styleCellVirtual  = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
	iconVirtual = "·"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints layout statistics on a single line.
func printStats(s grid.Stats, cached bool) {
	fmt.Println(statsLine(s, cached))
}

func statsLine(s grid.Stats, cached bool) string {
	parts := []string{
		fmt.Sprintf("%d layers", s.NumLayer),
		fmt.Sprintf("%d columns", s.Width),
		fmt.Sprintf("%d nodes", s.Nodes-s.Virtual),
	}
	if s.Virtual > 0 {
		parts = append(parts, fmt.Sprintf("%d virtual", s.Virtual))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	return line + StyleDim.Render(" · ") + statusStyle.Render(status)
}

// =============================================================================
// Grid Display
// =============================================================================

// gridTable renders g as a table with one row per layer and one column per
// grid column. With a highlight, the selected node and its downstream and
// upstream nodes are colored.
func gridTable(g *grid.Grid, h *pathfind.Highlight) string {
	headers := make([]string, g.Width+1)
	headers[0] = "layer"
	for col := range g.Width {
		headers[col+1] = fmt.Sprint(col)
	}

	rows := make([][]string, g.NumLayer)
	for layer := range g.NumLayer {
		row := make([]string, g.Width+1)
		row[0] = fmt.Sprint(layer)
		for col := range g.Width {
			if n := g.At(grid.Coord{Column: col, Layer: layer}); n != nil {
				row[col+1] = cellText(n)
			}
		}
		rows[layer] = row
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return headerStyle
			}
			n := g.At(grid.Coord{Column: col - 1, Layer: row})
			if n == nil {
				return cellStyle
			}
			return cellStyle.Inherit(nodeStyle(n, h))
		}).
		Render()
}

// cellText is the text of a grid cell.
func cellText(n *grid.Node) string {
	if n.Virtual {
		return iconVirtual
	}
	return n.Label
}

// nodeStyle picks the style of a node under highlight h.
func nodeStyle(n *grid.Node, h *pathfind.Highlight) lipgloss.Style {
	switch {
	case h != nil && h.Selected && n.Coord() == h.Start:
		return styleCellSelected
	case h != nil && h.TargetNodes[n.Coord()]:
		return styleCellTarget
	case h != nil && h.SourceNodes[n.Coord()]:
		return styleCellSource
	case n.Virtual:
		return styleCellVirtual
	default:
		return StyleValue
	}
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
