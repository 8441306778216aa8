package pooltop

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// snapshotMsg carries a published snapshot into the program
type snapshotMsg Snapshot

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ProgramPublisher forwards snapshots to a running bubbletea program
type ProgramPublisher struct {
	Program *tea.Program
}

func (pp ProgramPublisher) Publish(s Snapshot) {
	pp.Program.Send(snapshotMsg(s))
}

type dashboardModel struct {
	snap       *Snapshot
	stratumURL string
	theme      Theme
	tabs       *TabSet
	refresh    func()
	clock      time.Time
	width      int
	height     int
	ready      bool
}

// NewDashboard builds the model. refresh is called when the user asks for
// an immediate poll and may be nil.
func NewDashboard(stratumURL string, theme Theme, refresh func()) *dashboardModel {
	return &dashboardModel{
		stratumURL: stratumURL,
		theme:      theme,
		tabs:       NewTabSet(theme, PanelBlocks, PanelMiners, PanelHighScores),
		refresh:    refresh,
		clock:      time.Now(),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tickCmd()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			if m.refresh != nil {
				m.refresh()
			}
		case "[", "h", "left":
			m.tabs.PrevTab()
		case "]", "l", "right":
			m.tabs.NextTab()
		case "1", "2", "3":
			m.tabs.SelectTab(int(msg.String()[0] - '1'))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case snapshotMsg:
		s := Snapshot(msg)
		m.snap = &s

	case tickMsg:
		m.clock = time.Time(msg)
		return m, tickCmd()
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()

	// two panes per row, each with a title line and four lines of content
	const statsHeight = 5
	widths := splitWidth(m.width, 2)
	hashratePane := NewPane("Hashrate", widths[0], statsHeight, m.theme).
		SetContent(m.renderHashrate(widths[0])).
		SetFocused(true)
	networkPane := NewPane("Network", widths[1], statsHeight, m.theme).
		SetContent(m.renderNetwork())
	stats := Horizontal(hashratePane, networkPane)

	// header, help bar and three border pairs
	tabsHeight := max(m.height-statsHeight-lipgloss.Height(header)-1-4, 4)
	tabsWidth := max(m.width-2, 1)
	m.tabs.SetSize(tabsWidth, tabsHeight)
	var info *Info
	if m.snap != nil {
		info = &m.snap.Info
	}
	details := NewPane("", tabsWidth, tabsHeight, m.theme).SetContent(m.tabs.Render(info))

	helpBar := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Secondary)).
		Background(lipgloss.Color("235")).
		Width(m.width).
		Align(lipgloss.Center).
		Render("r=Refresh  []=Switch Tabs  1-3=Select Tab  q=Quit")

	return Vertical(header, stats, details.Render(), helpBar)
}

func (m dashboardModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Primary)).
		Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Secondary))

	uptime := "-"
	var updated time.Time
	if m.snap != nil {
		if start, ok := m.snap.Info.UptimeStart(); ok {
			uptime = FormatUptime(start, m.clock)
		}
		updated = m.snap.UpdatedAt
	}

	parts := []string{
		titleStyle.Render("pooltop"),
		"stratum+tcp://" + m.stratumURL,
		dimStyle.Render("uptime " + uptime),
		dimStyle.Render("updated " + FormatAgo(updated, m.clock)),
	}
	return strings.Join(parts, "  ")
}

func (m dashboardModel) renderHashrate(width int) string {
	if m.snap == nil {
		return "Waiting for data..."
	}
	smoothed := "-"
	if m.snap.Hashrate != nil {
		smoothed = FormatHashrate(*m.snap.Hashrate)
	}
	latest := "-"
	if v, ok := m.snap.Chart.Latest(); ok {
		latest = FormatHashrate(v)
	}

	lines := []string{
		fmt.Sprintf("Smoothed: %s", smoothed),
		fmt.Sprintf("Latest:   %s", latest),
		fmt.Sprintf("Samples:  %d (%d excluded)", m.snap.Chart.Len(), m.snap.Excluded),
		Sparkline(m.snap.Chart.Values, width, lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Primary))),
	}
	return strings.Join(lines, "\n")
}

func (m dashboardModel) renderNetwork() string {
	if m.snap == nil {
		return "Waiting for data..."
	}
	n := m.snap.Network

	ttb := "-"
	if m.snap.Hashrate != nil {
		if d, ok := ExpectedTimeToBlock(n.Difficulty, *m.snap.Hashrate); ok {
			ttb = FormatDuration(d)
		}
	}

	height := formatInt(n.Blocks)
	if n.Chain != "" {
		height += " (" + n.Chain + ")"
	}
	lines := []string{
		fmt.Sprintf("Height:     %s", height),
		fmt.Sprintf("Difficulty: %s", FormatDifficulty(n.Difficulty)),
		fmt.Sprintf("Hashrate:   %s", FormatHashrate(n.NetworkHashPS)),
		fmt.Sprintf("Next block: %s", ttb),
	}
	return strings.Join(lines, "\n")
}

// Dashboard runs the terminal UI until the user quits or ctx is cancelled.
// The poller is built from opts with the program added as a publisher.
func Dashboard(ctx context.Context, provider Provider, cfg Config, opts ...PollerOption) error {
	var poller *Poller
	m := NewDashboard(cfg.StratumURL, cfg.Theme, func() { poller.Refresh() })
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	opts = append([]PollerOption{
		WithInterval(cfg.RefreshInterval),
		WithTimeout(cfg.RequestTimeout),
		WithLabel(cfg.ChartLabel),
	}, opts...)
	opts = append(opts, WithPublisher(ProgramPublisher{Program: p}))
	poller = NewPoller(provider, opts...)

	pollCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = poller.Run(pollCtx)
	}()

	_, err := p.Run()
	cancel()
	<-done
	if err != nil && ctx.Err() != nil {
		// interrupted by a signal
		return nil
	}
	if err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
