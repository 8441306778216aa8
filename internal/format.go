package pooltop

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/hako/durafmt"
)

var hashrateUnits = []string{"H/s", "KH/s", "MH/s", "GH/s", "TH/s", "PH/s", "EH/s", "ZH/s"}

// FormatHashrate renders a hashrate with a 1000-based unit suffix
func FormatHashrate(h float64) string {
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return "-"
	}
	unit := hashrateUnits[0]
	val := h
	for i := 0; i < len(hashrateUnits)-1 && val >= 1000; i++ {
		val /= 1000
		unit = hashrateUnits[i+1]
	}
	return fmt.Sprintf("%.2f %s", val, unit)
}

// FormatDifficulty renders a share or network difficulty compactly
func FormatDifficulty(d float64) string {
	if d <= 0 || math.IsNaN(d) {
		return "0"
	}
	switch {
	case d >= 1e15:
		return fmt.Sprintf("%.2fP", d/1e15)
	case d >= 1e12:
		return fmt.Sprintf("%.2fT", d/1e12)
	case d >= 1e9:
		return fmt.Sprintf("%.2fG", d/1e9)
	case d >= 1e6:
		return fmt.Sprintf("%.2fM", d/1e6)
	case d >= 1e3:
		return fmt.Sprintf("%.2fK", d/1e3)
	default:
		return fmt.Sprintf("%.0f", math.Round(d))
	}
}

// ExpectedTimeToBlock is the mean time for the given hashrate to find a
// block at the given difficulty. The second return is false when either
// input is not positive or the result does not fit a time.Duration.
func ExpectedTimeToBlock(difficulty, hashrate float64) (time.Duration, bool) {
	if difficulty <= 0 || hashrate <= 0 {
		return 0, false
	}
	seconds := difficulty * math.Exp2(32) / hashrate
	if math.IsInf(seconds, 0) || math.IsNaN(seconds) || seconds > float64(math.MaxInt64)/float64(time.Second) {
		return 0, false
	}
	return time.Duration(seconds * float64(time.Second)), true
}

// FormatDuration renders d with its two most significant units
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0 seconds"
	}
	if d >= time.Minute {
		d = d.Round(time.Minute)
	} else {
		d = d.Round(time.Second)
	}
	return durafmt.Parse(d).LimitFirstN(2).String()
}

// FormatUptime renders the time elapsed since start
func FormatUptime(start, now time.Time) string {
	if start.IsZero() || now.Before(start) {
		return "-"
	}
	return FormatDuration(now.Sub(start))
}

// FormatAgo renders how long ago t was, for "updated ... ago" lines
func FormatAgo(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	if d < time.Second {
		return "just now"
	}
	return durafmt.Parse(d.Round(time.Second)).LimitFirstN(1).String() + " ago"
}

// shortDisplayID keeps only [A-Za-z0-9._-] and, when the result is longer
// than prefix+suffix+3, elides the middle
func shortDisplayID(s string, prefix, suffix int) string {
	cleaned := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			cleaned = append(cleaned, r)
		case r == '.', r == '-', r == '_':
			cleaned = append(cleaned, r)
		}
	}
	prefix, suffix = max(prefix, 0), max(suffix, 0)
	n := len(cleaned)
	if n <= prefix+suffix+3 {
		return string(cleaned)
	}
	return string(cleaned[:prefix]) + "..." + string(cleaned[n-suffix:])
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
