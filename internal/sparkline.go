package pooltop

import (
	"slices"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders the last width values as a one-row sparkline scaled
// from zero to the largest value
func Sparkline(values []float64, width int, style lipgloss.Style) string {
	if width <= 0 || len(values) == 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	top := slices.Max(values)
	if top <= 0 {
		top = 1
	}
	sl := sparkline.New(width, 1,
		sparkline.WithStyle(style),
		sparkline.WithMaxValue(top),
	)
	sl.PushAll(values)
	sl.Draw()
	return sl.View()
}
