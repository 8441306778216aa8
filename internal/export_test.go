package pooltop

import (
	"bytes"
	"errors"
	"testing"
)

func TestRenderChartPNG(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
	}{
		{"series", []float64{1.2e12, 1.3e12, 1.1e12, 1.25e12}},
		{"single point", []float64{5e11}},
		{"flat", []float64{7, 7, 7}},
		{"all zero", []float64{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := Project("Hashrate", seriesOf(tt.values...))
			if err := RenderChartPNG(&buf, c, DefaultTheme()); err != nil {
				t.Fatalf("RenderChartPNG: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
				t.Fatal("output is not a PNG")
			}
		})
	}
}

func TestRenderChartPNGEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := RenderChartPNG(&buf, ChartSeries{}, DefaultTheme())
	if !errors.Is(err, ErrNoSamples) {
		t.Fatalf("expected ErrNoSamples, got %v", err)
	}
}

func TestHexColor(t *testing.T) {
	t.Parallel()

	if c, ok := hexColor("#ff0000"); !ok || c.R != 255 || c.G != 0 {
		t.Fatalf("unexpected colour %+v (ok=%v)", c, ok)
	}
	for _, s := range []string{"170", "#ggg", "ff0000", ""} {
		if _, ok := hexColor(s); ok {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}
