package pooltop

import (
	"errors"
	"time"
)

// ErrNoSnapshot is returned when no poll has completed yet
var ErrNoSnapshot = errors.New("no snapshot available yet")

// Snapshot is the combined, processed result of one successful poll
type Snapshot struct {
	Generation uint64      `json:"generation"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Info       Info        `json:"info"`
	Network    NetworkInfo `json:"network"`
	Chart      ChartSeries `json:"chart"`
	// Hashrate is the smoothed hashrate, nil when the series is empty
	Hashrate *float64 `json:"hashrate"`
	Excluded int      `json:"excluded"`
}

func newSnapshot(gen uint64, at time.Time, label string, info Info, raw Series, network NetworkInfo) Snapshot {
	res := Process(label, raw)
	snap := Snapshot{
		Generation: gen,
		UpdatedAt:  at,
		Info:       info,
		Network:    network,
		Chart:      res.Chart,
		Excluded:   res.Excluded,
	}
	if res.HasValue {
		h := res.Hashrate
		snap.Hashrate = &h
	}
	return snap
}

// Publisher receives every published snapshot in firing order
type Publisher interface {
	Publish(Snapshot)
}

// PublisherFunc adapts a function to Publisher
type PublisherFunc func(Snapshot)

func (f PublisherFunc) Publish(s Snapshot) {
	f(s)
}
