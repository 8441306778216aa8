package pooltop

import (
	"math"
	"time"
)

// Sample is one hashrate reading reported by the pool
type Sample struct {
	Label time.Time `json:"label"`
	Data  float64   `json:"data"`
}

// Series is a chronologically ordered list of samples
type Series []Sample

// Values returns the sample values in order
func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	for i, sample := range s {
		values[i] = sample.Data
	}
	return values
}

// ChartSeries is the chart-ready projection of a Series: parallel label and
// value arrays in input order
type ChartSeries struct {
	Name   string      `json:"name"`
	Labels []time.Time `json:"labels"`
	Values []float64   `json:"values"`
}

// Len returns the number of points in the chart series
func (c ChartSeries) Len() int {
	return len(c.Values)
}

// Latest returns the most recent value, if any
func (c ChartSeries) Latest() (float64, bool) {
	if len(c.Values) == 0 {
		return 0, false
	}
	return c.Values[len(c.Values)-1], true
}

// Sanitize drops samples whose value is negative or not finite. Order is kept.
func Sanitize(s Series) Series {
	out := make(Series, 0, len(s))
	for _, sample := range s {
		if sample.Data < 0 || math.IsNaN(sample.Data) || math.IsInf(sample.Data, 0) {
			continue
		}
		out = append(out, sample)
	}
	return out
}

// Project maps a series into parallel label/value arrays. No aggregation or
// resampling is done.
func Project(name string, s Series) ChartSeries {
	c := ChartSeries{
		Name:   name,
		Labels: make([]time.Time, len(s)),
		Values: make([]float64, len(s)),
	}
	for i, sample := range s {
		c.Labels[i] = sample.Label
		c.Values[i] = sample.Data
	}
	return c
}
