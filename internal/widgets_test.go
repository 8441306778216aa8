package pooltop

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPaneRender(t *testing.T) {
	t.Parallel()

	p := NewPane("Old", 10, 3, DefaultTheme()).
		SetTitle("Hashrate").
		SetContent("1.23 TH/s").
		SetSize(20, 5)
	out := p.String()
	if !strings.Contains(out, "Hashrate") || !strings.Contains(out, "1.23 TH/s") {
		t.Fatalf("unexpected pane:\n%s", out)
	}
	if strings.Contains(out, "Old") {
		t.Fatalf("title was not replaced:\n%s", out)
	}
	if w, h := lipgloss.Width(out), lipgloss.Height(out); w != 22 || h != 7 {
		t.Fatalf("pane is %dx%d, want 22x7", w, h)
	}
}

func TestSplitWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total, n int
		want     []int
	}{
		{120, 2, []int{58, 58}},
		{101, 2, []int{48, 49}},
		{2, 2, []int{1, 1}},
		{50, 0, nil},
	}
	for _, tt := range tests {
		if got := splitWidth(tt.total, tt.n); !slices.Equal(got, tt.want) {
			t.Fatalf("splitWidth(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
		}
	}
}

func tableRows(n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("r%d", i), "x"}
	}
	return rows
}

func TestWrapTableWrapsByHeight(t *testing.T) {
	t.Parallel()

	wt := NewWrapTable(DefaultTheme()).
		Headers("Name", "Value").
		Rows(tableRows(10)...).
		MaxHeight(7)
	if got := wt.RowsPerTable(); got != 3 {
		t.Fatalf("RowsPerTable = %d, want 3", got)
	}

	out := wt.Render()
	if h := lipgloss.Height(out); h != 7 {
		t.Fatalf("height = %d, want 7:\n%s", h, out)
	}
	for _, want := range []string{"r0", "r3", "r9"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s:\n%s", want, out)
		}
	}

	narrow := wt.MaxWidth(1).String()
	if !strings.Contains(narrow, "r2") || strings.Contains(narrow, "r3") {
		t.Fatalf("narrow table should hold only the first chunk:\n%s", narrow)
	}
}

func TestWrapTableEmpty(t *testing.T) {
	t.Parallel()

	if got := NewWrapTable(DefaultTheme()).Headers("A").Render(); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestTabSetRender(t *testing.T) {
	t.Parallel()

	ts := NewTabSet(DefaultTheme(), PanelBlocks, PanelMiners, PanelHighScores).SetSize(100, 20)

	out := ts.Render(nil)
	for _, want := range []string{"Blocks", "Miners", "High Scores", "Waiting for data..."} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q:\n%s", want, out)
		}
	}
	if out := ts.Render(&Info{}); !strings.Contains(out, "Nothing to show yet") {
		t.Fatalf("empty info:\n%s", out)
	}

	info := &Info{UserAgents: []UserAgent{{UserAgent: "bitaxe/2.1", Count: 3, TotalHashRate: 1.5e12, BestDifficulty: 2.5e6}}}
	out = ts.SelectTab(1).Render(info)
	for _, want := range []string{"bitaxe/2.1", "1.50 TH/s", "2.50M"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q:\n%s", want, out)
		}
	}
	if got := ts.SelectTab(7).GetSelectedTab(); got != 1 {
		t.Fatalf("out of range select moved the tab to %d", got)
	}
}
