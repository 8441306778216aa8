package pooltop

import (
	"time"
)

const (
	// REFRESH_INTERVAL is the default time between pool polls in seconds
	REFRESH_INTERVAL = 60

	// REQUEST_TIMEOUT is the default deadline for one poll in seconds
	REQUEST_TIMEOUT = 10

	// SMOOTHING_WINDOW is the number of trailing samples the smoothed
	// hashrate is computed from
	SMOOTHING_WINDOW = 5

	// RATIO_MIN and RATIO_MAX bound a normal step between two consecutive
	// samples, both inclusive
	RATIO_MIN = 0.7
	RATIO_MAX = 1.5

	// DEFAULT_CHART_LABEL names the hashrate series on charts
	DEFAULT_CHART_LABEL = "Hashrate"

	// DEFAULT_STRATUM_PORT is appended to the pool host when no stratum URL
	// is configured
	DEFAULT_STRATUM_PORT = "3333"

	// DEFAULT_LISTEN is the serve command's HTTP listen address
	DEFAULT_LISTEN = ":9464"
)

// RefreshDuration returns the default refresh interval as a time.Duration
func RefreshDuration() time.Duration {
	return time.Duration(REFRESH_INTERVAL) * time.Second
}

// RequestTimeoutDuration returns the default request timeout as a time.Duration
func RequestTimeoutDuration() time.Duration {
	return time.Duration(REQUEST_TIMEOUT) * time.Second
}
