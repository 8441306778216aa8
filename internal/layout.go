package pooltop

import (
	"github.com/charmbracelet/lipgloss"
)

// Horizontal renders panes side by side
func Horizontal(panes ...Pane) string {
	if len(panes) == 0 {
		return ""
	}

	views := make([]string, len(panes))
	for i, pane := range panes {
		views[i] = pane.Render()
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

// Vertical stacks rendered blocks, left aligned
func Vertical(blocks ...string) string {
	if len(blocks) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// splitWidth divides a total width between n side-by-side panes, leaving
// room for each pane's borders. The last pane takes the remainder.
func splitWidth(total, n int) []int {
	if n <= 0 {
		return nil
	}
	const border = 2
	inner := max(total-n*border, n)
	widths := make([]int, n)
	for i := range widths {
		widths[i] = inner / n
	}
	widths[n-1] += inner % n
	return widths
}
