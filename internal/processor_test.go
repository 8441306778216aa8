package pooltop

import (
	"math"
	"slices"
	"testing"
	"time"
)

func seriesOf(values ...float64) Series {
	base := time.Unix(1_700_000_000, 0).UTC()
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = Sample{Label: base.Add(time.Duration(i) * 10 * time.Minute), Data: v}
	}
	return s
}

func TestFilterOutliers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"empty", nil, nil},
		{"single", []float64{5}, []float64{5}},
		{"two points never filtered", []float64{1, 1000}, []float64{1, 1000}},
		{"flat", []float64{100, 100, 100, 100}, []float64{100, 100, 100, 100}},
		{"spike followed by normal step", []float64{100, 100, 1000, 101, 100}, []float64{100, 100, 101, 100}},
		{"abnormal then abnormal is kept", []float64{100, 1000, 100}, []float64{100, 1000, 100}},
		{"first point spike", []float64{100, 1000, 100, 100, 100}, []float64{100, 100, 100, 100}},
		{"trailing spike kept", []float64{100, 100, 100, 1000, 100}, []float64{100, 100, 100, 1000, 100}},
		{"ratio exactly 0.7 is normal", []float64{100, 70, 70}, []float64{100, 70, 70}},
		{"ratio below 0.7 is abnormal", []float64{100, 69, 69}, []float64{69, 69}},
		{"ratio exactly 1.5 is normal", []float64{100, 150, 150}, []float64{100, 150, 150}},
		{"ratio above 1.5 is abnormal", []float64{100, 151, 151}, []float64{151, 151}},
		{"next ratio exactly 0.7 is normal", []float64{100, 200, 140}, []float64{200, 140}},
		{"next ratio below 0.7", []float64{100, 200, 139}, []float64{100, 200, 139}},
		{"next ratio exactly 1.5 is normal", []float64{100, 200, 300}, []float64{200, 300}},
		{"next ratio above 1.5", []float64{100, 200, 301}, []float64{100, 200, 301}},
		{"zero current value kept", []float64{0, 100, 100}, []float64{0, 100, 100}},
		{"zero next value kept", []float64{100, 0, 100, 100}, []float64{100, 0, 100, 100}},
		{"all zero", []float64{0, 0, 0, 0}, []float64{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterOutliers(seriesOf(tt.in...)).Values()
			if !slices.Equal(got, tt.want) {
				t.Fatalf("FilterOutliers(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilterOutliersKeepsLastTwo(t *testing.T) {
	t.Parallel()

	inputs := [][]float64{
		{1, 10, 100, 1000, 1},
		{100, 1, 100, 1, 100, 1},
		{5, 500, 5, 500},
		{0, 1e12, 0},
	}
	for _, in := range inputs {
		s := seriesOf(in...)
		got := FilterOutliers(s)
		if len(got) < 2 {
			t.Fatalf("FilterOutliers(%v) removed one of the last two points: %v", in, got.Values())
		}
		if got[len(got)-1] != s[len(s)-1] || got[len(got)-2] != s[len(s)-2] {
			t.Fatalf("FilterOutliers(%v) changed the tail: %v", in, got.Values())
		}
	}
}

func TestFilterOutliersDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	s := seriesOf(100, 1000, 100, 100)
	before := slices.Clone(s)
	_ = FilterOutliers(s)
	if !slices.Equal(s, before) {
		t.Fatalf("input was mutated: %v", s.Values())
	}
}

func TestFilterOutliersPreservesLabels(t *testing.T) {
	t.Parallel()

	s := seriesOf(100, 100, 1000, 101, 100)
	got := FilterOutliers(s)
	want := []time.Time{s[0].Label, s[1].Label, s[3].Label, s[4].Label}
	for i, sample := range got {
		if !sample.Label.Equal(want[i]) {
			t.Fatalf("label %d: got %v want %v", i, sample.Label, want[i])
		}
	}
}

// The heuristic only looks at the raw neighbours, so removing a point can
// expose a new abnormal step on the next pass.
func TestFilterOutliersIsNotIdempotent(t *testing.T) {
	t.Parallel()

	once := FilterOutliers(seriesOf(100, 200, 400, 400))
	if want := []float64{100, 400, 400}; !slices.Equal(once.Values(), want) {
		t.Fatalf("first pass: got %v want %v", once.Values(), want)
	}
	twice := FilterOutliers(once)
	if want := []float64{400, 400}; !slices.Equal(twice.Values(), want) {
		t.Fatalf("second pass: got %v want %v", twice.Values(), want)
	}

	stable := FilterOutliers(seriesOf(100, 100, 1000, 101, 100))
	if again := FilterOutliers(stable); !slices.Equal(again.Values(), stable.Values()) {
		t.Fatalf("expected a stable series to survive a second pass: %v -> %v", stable.Values(), again.Values())
	}
}

func TestSmoothedHashrate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     []float64
		want   float64
		wantOK bool
	}{
		{"empty", nil, 0, false},
		{"single", []float64{42}, 42, true},
		{"short series uses latest", []float64{5, 7, 9}, 9, true},
		{"four values uses latest", []float64{1, 2, 3, 4}, 4, true},
		{"trimmed mean of five", []float64{10, 100, 11, 12, 13}, 12, true},
		{"only last five count", []float64{1e9, 10, 100, 11, 12, 13}, 12, true},
		{"equal values", []float64{3, 3, 3, 3, 3}, 3, true},
		{"zeros", []float64{0, 0, 0, 0, 0}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SmoothedHashrate(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("SmoothedHashrate(%v) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Fatalf("SmoothedHashrate(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSmoothedHashrateDoesNotSortInput(t *testing.T) {
	t.Parallel()

	in := []float64{10, 100, 11, 12, 13}
	before := slices.Clone(in)
	_, _ = SmoothedHashrate(in)
	if !slices.Equal(in, before) {
		t.Fatalf("input was reordered: %v", in)
	}
}

func TestProcess(t *testing.T) {
	t.Parallel()

	raw := seriesOf(100, math.NaN(), 100, 1000, 101, -5, 100, 102, 98)
	res := Process("Hashrate", raw)

	if res.Dropped != 2 {
		t.Fatalf("dropped: got %d want 2", res.Dropped)
	}
	if res.Excluded != 1 {
		t.Fatalf("excluded: got %d want 1", res.Excluded)
	}
	if want := []float64{100, 100, 101, 100, 102, 98}; !slices.Equal(res.Chart.Values, want) {
		t.Fatalf("chart values: got %v want %v", res.Chart.Values, want)
	}
	if len(res.Chart.Labels) != len(res.Chart.Values) {
		t.Fatalf("labels and values differ in length: %d vs %d", len(res.Chart.Labels), len(res.Chart.Values))
	}
	if res.Chart.Name != "Hashrate" {
		t.Fatalf("chart name: got %q", res.Chart.Name)
	}
	// last five: 100 101 100 102 98 -> middle three 100 100 101
	if !res.HasValue || math.Abs(res.Hashrate-301.0/3) > 1e-9 {
		t.Fatalf("hashrate: got %v (ok=%v)", res.Hashrate, res.HasValue)
	}
}

func TestProcessEmptySeries(t *testing.T) {
	t.Parallel()

	res := Process("Hashrate", nil)
	if res.HasValue {
		t.Fatalf("expected no hashrate for an empty series, got %v", res.Hashrate)
	}
	if res.Chart.Len() != 0 {
		t.Fatalf("expected empty chart, got %d points", res.Chart.Len())
	}
	if _, ok := res.Chart.Latest(); ok {
		t.Fatal("expected no latest value")
	}
}
