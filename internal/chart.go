package pooltop

// PanelKind selects what a detail tab shows
type PanelKind int

const (
	PanelBlocks PanelKind = iota
	PanelMiners
	PanelHighScores
)

// Title is the tab label
func (k PanelKind) Title() string {
	switch k {
	case PanelBlocks:
		return "Blocks"
	case PanelMiners:
		return "Miners"
	case PanelHighScores:
		return "High Scores"
	default:
		return "Unknown"
	}
}

// rows builds the table for this panel out of a snapshot
func (k PanelKind) rows(info Info) ([]string, [][]string) {
	switch k {
	case PanelBlocks:
		rows := make([][]string, 0, len(info.BlockData))
		for _, b := range info.BlockData {
			rows = append(rows, []string{
				formatInt(b.Height),
				shortDisplayID(b.MinerAddress, 8, 6),
				b.Worker,
			})
		}
		return []string{"Height", "Address", "Worker"}, rows
	case PanelMiners:
		rows := make([][]string, 0, len(info.UserAgents))
		for _, ua := range info.UserAgents {
			rows = append(rows, []string{
				ua.UserAgent,
				formatInt(int64(ua.Count)),
				FormatHashrate(ua.TotalHashRate),
				FormatDifficulty(ua.BestDifficulty),
			})
		}
		return []string{"Miner", "Count", "Hashrate", "Best"}, rows
	case PanelHighScores:
		rows := make([][]string, 0, len(info.HighScores))
		for _, hs := range info.HighScores {
			when := "-"
			if !hs.UpdatedAt.IsZero() {
				when = hs.UpdatedAt.UTC().Format("2006-01-02 15:04")
			}
			rows = append(rows, []string{
				FormatDifficulty(hs.BestDifficulty),
				hs.BestDifficultyUserAgent,
				when,
			})
		}
		return []string{"Difficulty", "Miner", "When"}, rows
	}
	return nil, nil
}
