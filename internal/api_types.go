package pooltop

import (
	"time"
)

// Info is the pool's /api/info payload
type Info struct {
	BlockData  []BlockData `json:"blockData"`
	UserAgents []UserAgent `json:"userAgents"`
	HighScores []HighScore `json:"highScores"`
	// Uptime is the pool start time as the pool reports it
	Uptime string `json:"uptime"`
}

// BlockData is a block found by the pool
type BlockData struct {
	Height       int64  `json:"height"`
	MinerAddress string `json:"minerAddress"`
	Worker       string `json:"worker"`
	SessionID    string `json:"sessionId"`
}

// UserAgent aggregates the connected miners of one kind
type UserAgent struct {
	UserAgent      string  `json:"userAgent"`
	Count          int     `json:"count"`
	BestDifficulty float64 `json:"bestDifficulty"`
	TotalHashRate  float64 `json:"totalHashRate"`
}

// HighScore is a best share record
type HighScore struct {
	UpdatedAt               time.Time `json:"updatedAt"`
	BestDifficulty          float64   `json:"bestDifficulty"`
	BestDifficultyUserAgent string    `json:"bestDifficultyUserAgent"`
}

// NetworkInfo is the node's mining info as relayed by the pool. Only the
// display fields are decoded.
type NetworkInfo struct {
	Blocks        int64   `json:"blocks"`
	Difficulty    float64 `json:"difficulty"`
	NetworkHashPS float64 `json:"networkhashps"`
	Chain         string  `json:"chain"`
}

// UptimeStart parses the reported uptime as a start timestamp
func (i Info) UptimeStart() (time.Time, bool) {
	if i.Uptime == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, i.Uptime); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
