package pooltop

import (
	"errors"
	"io"
	"slices"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoSamples is returned when a chart is requested for an empty series
var ErrNoSamples = errors.New("chart series has no samples")

const (
	chartWidth  = 1024
	chartHeight = 400
)

func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 1,
		DotColor:    col,
		DotWidth:    3,
	}
}

// hexColor converts a "#rrggbb" or "#rgb" theme colour. Terminal palette
// indices have no chart equivalent and report false.
func hexColor(s string) (drawing.Color, bool) {
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return drawing.Color{}, false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return drawing.Color{}, false
		}
	}
	return drawing.ColorFromHex(s[1:]), true
}

// RenderChartPNG draws the hashrate series as a PNG
func RenderChartPNG(w io.Writer, c ChartSeries, theme Theme) error {
	if c.Len() == 0 || len(c.Labels) != len(c.Values) {
		return ErrNoSamples
	}

	xs := slices.Clone(c.Labels)
	ys := slices.Clone(c.Values)
	if len(xs) == 1 {
		// a single point has no time range to draw against
		xs = append(xs, xs[0].Add(time.Minute))
		ys = append(ys, ys[0])
	}

	col, ok := hexColor(theme.Primary)
	if !ok {
		col = chart.ColorBlue
	}

	lo, hi := slices.Min(ys), slices.Max(ys)
	var yRange *chart.ContinuousRange
	if lo == hi {
		if hi == 0 {
			yRange = &chart.ContinuousRange{Min: 0, Max: 1}
		} else {
			yRange = &chart.ContinuousRange{Min: lo * 0.9, Max: hi * 1.1}
		}
	}

	name := c.Name
	if name == "" {
		name = DEFAULT_CHART_LABEL
	}

	graph := chart.Chart{
		Title:      name,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 12, Bottom: 10}},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02 15:04"),
		},
		YAxis: chart.YAxis{
			Name: "H/s",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return FormatHashrate(f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    name,
				XValues: xs,
				YValues: ys,
				Style:   pointStyle(col),
			},
		},
	}
	if yRange != nil {
		graph.YAxis.Range = yRange
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}
