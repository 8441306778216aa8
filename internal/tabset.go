package pooltop

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TabSet manages the detail panels with tab navigation
type TabSet struct {
	panels      []PanelKind
	selectedTab int
	width       int
	height      int
	theme       Theme
}

// NewTabSet creates a TabSet over the given panels
func NewTabSet(theme Theme, panels ...PanelKind) *TabSet {
	return &TabSet{
		panels: panels,
		width:  40,
		height: 10,
		theme:  theme,
	}
}

// SetSize sets the dimensions for rendering
func (ts *TabSet) SetSize(width, height int) *TabSet {
	ts.width = width
	ts.height = height
	return ts
}

// SelectTab changes the active tab
func (ts *TabSet) SelectTab(index int) *TabSet {
	if index >= 0 && index < len(ts.panels) {
		ts.selectedTab = index
	}
	return ts
}

// NextTab moves to the next tab (wraps around)
func (ts *TabSet) NextTab() *TabSet {
	if len(ts.panels) > 0 {
		ts.selectedTab = (ts.selectedTab + 1) % len(ts.panels)
	}
	return ts
}

// PrevTab moves to the previous tab (wraps around)
func (ts *TabSet) PrevTab() *TabSet {
	if len(ts.panels) > 0 {
		ts.selectedTab = (ts.selectedTab - 1 + len(ts.panels)) % len(ts.panels)
	}
	return ts
}

// Selected returns the active panel
func (ts *TabSet) Selected() PanelKind {
	if len(ts.panels) == 0 {
		return PanelBlocks
	}
	return ts.panels[ts.selectedTab]
}

// GetSelectedTab returns the currently selected tab index
func (ts *TabSet) GetSelectedTab() int {
	return ts.selectedTab
}

// Render renders the tab bar and the active panel's table for info. A nil
// info means no poll has completed yet.
func (ts *TabSet) Render(info *Info) string {
	if len(ts.panels) == 0 {
		return "No panels"
	}

	var b strings.Builder
	b.WriteString(ts.renderTabs())
	b.WriteString("\n")

	// the tab bar is three lines high
	contentHeight := ts.height - 3
	if info == nil {
		b.WriteString("Waiting for data...")
		return b.String()
	}

	headers, rows := ts.Selected().rows(*info)
	if len(rows) == 0 {
		b.WriteString("Nothing to show yet")
		return b.String()
	}
	t := NewWrapTable(ts.theme).
		MaxHeight(contentHeight).
		MaxWidth(ts.width).
		Headers(headers...).
		Rows(rows...)
	b.WriteString(t.Render())

	return b.String()
}

// renderTabs renders the tab navigation bar
func (ts *TabSet) renderTabs() string {
	activeTabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ts.theme.Primary)).
		Background(lipgloss.Color("235")).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ts.theme.Primary))

	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ts.theme.Secondary)).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ts.theme.Border))

	var renderedTabs []string
	for i, panel := range ts.panels {
		if i == ts.selectedTab {
			renderedTabs = append(renderedTabs, activeTabStyle.Render(panel.Title()))
		} else {
			renderedTabs = append(renderedTabs, inactiveTabStyle.Render(panel.Title()))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}
