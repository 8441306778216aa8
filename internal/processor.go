package pooltop

import (
	"slices"
)

// normalRatio reports whether a step between two samples is within the
// expected band
func normalRatio(r float64) bool {
	return r >= RATIO_MIN && r <= RATIO_MAX
}

// FilterOutliers removes single-point spikes. A point is dropped when the
// step away from it is abnormal but the step after that is normal again.
// The last two points have no look-ahead window and are always kept, and a
// zero denominator on either step keeps the point.
func FilterOutliers(s Series) Series {
	out := make(Series, 0, len(s))
	for i, sample := range s {
		if i < len(s)-2 && isSpike(sample.Data, s[i+1].Data, s[i+2].Data) {
			continue
		}
		out = append(out, sample)
	}
	return out
}

func isSpike(v, next, nextNext float64) bool {
	if v == 0 || next == 0 {
		return false
	}
	ratio := next / v
	nextRatio := nextNext / next
	return !normalRatio(ratio) && normalRatio(nextRatio)
}

// SmoothedHashrate reduces the trailing samples to one value. With a full
// window the lowest and highest of the last five are discarded and the
// middle three averaged; with a shorter series the latest value is used.
// The second return is false when there are no values.
func SmoothedHashrate(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	if len(values) < SMOOTHING_WINDOW {
		return values[len(values)-1], true
	}

	window := slices.Clone(values[len(values)-SMOOTHING_WINDOW:])
	slices.Sort(window)
	middle := window[1 : len(window)-1]

	sum := 0.0
	for _, v := range middle {
		sum += v
	}
	return sum / float64(len(middle)), true
}

// Result is the processed form of one raw series
type Result struct {
	Chart    ChartSeries
	Hashrate float64
	HasValue bool
	// Excluded counts the points removed by the outlier filter
	Excluded int
	// Dropped counts the samples rejected as malformed
	Dropped int
}

// Process runs the full pipeline over a raw series
func Process(name string, raw Series) Result {
	clean := Sanitize(raw)
	filtered := FilterOutliers(clean)
	chart := Project(name, filtered)
	hashrate, ok := SmoothedHashrate(chart.Values)
	return Result{
		Chart:    chart,
		Hashrate: hashrate,
		HasValue: ok,
		Excluded: len(clean) - len(filtered),
		Dropped:  len(raw) - len(clean),
	}
}
