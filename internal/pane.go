package pooltop

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Pane is a bordered panel of the dashboard.
//
// Example usage:
//
//	pane := NewPane("Hashrate", 40, 6, DefaultTheme()).
//	    SetContent("1.23 TH/s").
//	    SetFocused(true)
//	fmt.Println(pane.Render())
//
// Panes compose with the layout helpers:
//
//	row := Horizontal(hashratePane, networkPane)
type Pane struct {
	title       string
	content     string
	width       int
	height      int
	theme       Theme
	borderStyle lipgloss.Style
	titleStyle  lipgloss.Style
	focused     bool
}

// NewPane creates a pane styled with the given theme
func NewPane(title string, width, height int, theme Theme) Pane {
	return Pane{
		title:  title,
		width:  width,
		height: height,
		theme:  theme,
		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Border)),
		titleStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Primary)).
			Bold(true),
	}
}

// SetTitle sets the pane title
func (p Pane) SetTitle(title string) Pane {
	p.title = title
	return p
}

// SetContent sets the pane content
func (p Pane) SetContent(content string) Pane {
	p.content = content
	return p
}

// SetSize sets the pane dimensions
func (p Pane) SetSize(width, height int) Pane {
	p.width = width
	p.height = height
	return p
}

// SetFocused highlights the border with the primary colour
func (p Pane) SetFocused(focused bool) Pane {
	p.focused = focused
	if focused {
		p.borderStyle = p.borderStyle.BorderForeground(lipgloss.Color(p.theme.Primary))
	} else {
		p.borderStyle = p.borderStyle.BorderForeground(lipgloss.Color(p.theme.Border))
	}
	return p
}

// Render draws the pane
func (p Pane) Render() string {
	var b strings.Builder

	if p.title != "" {
		b.WriteString(p.titleStyle.Render(p.title) + "\n")
	}
	b.WriteString(p.content)

	return p.borderStyle.
		Width(max(p.width, 1)).
		Height(max(p.height, 1)).
		Render(b.String())
}

// String is a convenience method that calls Render
func (p Pane) String() string {
	return p.Render()
}
