package pooltop

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// WrapTable wraps lipgloss table to support height-based wrapping.
// When the rows exceed maxHeight it lays out several tables side by side.
type WrapTable struct {
	headers     []string
	rows        [][]string
	maxHeight   int
	maxWidth    int
	border      lipgloss.Border
	borderStyle lipgloss.Style
	headerStyle lipgloss.Style
}

// NewWrapTable creates a table styled with the given theme
func NewWrapTable(theme Theme) *WrapTable {
	return &WrapTable{
		border:      lipgloss.NormalBorder(),
		borderStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Border)),
		headerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Primary)).Bold(true).Padding(0, 1),
	}
}

// Headers sets the table headers
func (wt *WrapTable) Headers(headers ...string) *WrapTable {
	wt.headers = headers
	return wt
}

// Rows sets the table rows
func (wt *WrapTable) Rows(rows ...[]string) *WrapTable {
	wt.rows = rows
	return wt
}

// MaxHeight sets the maximum height constraint
func (wt *WrapTable) MaxHeight(height int) *WrapTable {
	wt.maxHeight = height
	return wt
}

// MaxWidth caps the width of the combined output. Chunks that do not fit
// are dropped.
func (wt *WrapTable) MaxWidth(width int) *WrapTable {
	wt.maxWidth = width
	return wt
}

// RowsPerTable is how many rows fit one table under the height constraint.
// Header, its separator and the top and bottom borders take four lines.
func (wt *WrapTable) RowsPerTable() int {
	if wt.maxHeight <= 0 {
		return max(len(wt.rows), 1)
	}
	return max(wt.maxHeight-4, 1)
}

func (wt *WrapTable) build(rows [][]string) string {
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	headerStyle := wt.headerStyle
	return table.New().
		Border(wt.border).
		BorderStyle(wt.borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(wt.headers...).
		Rows(rows...).
		String()
}

// Render renders the table with wrapping if needed
func (wt *WrapTable) Render() string {
	if len(wt.rows) == 0 {
		return ""
	}

	rowsPerTable := wt.RowsPerTable()
	if len(wt.rows) <= rowsPerTable {
		return wt.build(wt.rows)
	}

	var tables []string
	width := 0
	for i := 0; i < len(wt.rows); i += rowsPerTable {
		end := min(i+rowsPerTable, len(wt.rows))
		t := wt.build(wt.rows[i:end])
		w := lipgloss.Width(t)
		if wt.maxWidth > 0 && len(tables) > 0 && width+w > wt.maxWidth {
			break
		}
		width += w
		tables = append(tables, t)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tables...)
}

// String is a convenience method that calls Render
func (wt *WrapTable) String() string {
	return wt.Render()
}
