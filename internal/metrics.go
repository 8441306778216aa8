package pooltop

import (
	"math"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "pooltop"

// Metrics exports poll results and poller health as Prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry   *prometheus.Registry
	hashrate   prometheus.Gauge
	latest     prometheus.Gauge
	difficulty prometheus.Gauge
	lastUpdate prometheus.Gauge
	samples    prometheus.Gauge
	excluded   prometheus.Gauge
	failures   *prometheus.CounterVec
	superseded prometheus.Counter
}

// NewMetrics creates the collectors on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		hashrate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "hashrate_smoothed",
			Help:      "Trimmed mean of the last five filtered hashrate samples in H/s; NaN when no samples.",
		}),
		latest: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "hashrate_latest",
			Help:      "Most recent filtered hashrate sample in H/s; NaN when no samples.",
		}),
		difficulty: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "network_difficulty",
			Help:      "Network difficulty reported by the pool.",
		}),
		lastUpdate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_update_timestamp_seconds",
			Help:      "Unix time of the poll whose results were last published.",
		}),
		samples: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "chart_samples",
			Help:      "Number of points in the published chart series.",
		}),
		excluded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "outliers_excluded",
			Help:      "Points removed by the outlier filter on the last published poll.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "poll_failures_total",
			Help:      "Failed pool API requests by endpoint.",
		}, []string{"endpoint"}),
		superseded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "polls_superseded_total",
			Help:      "Polls whose results were dropped because a newer poll had started.",
		}),
	}
	m.registry.MustRegister(
		m.hashrate,
		m.latest,
		m.difficulty,
		m.lastUpdate,
		m.samples,
		m.excluded,
		m.failures,
		m.superseded,
	)
	m.hashrate.Set(math.NaN())
	m.latest.Set(math.NaN())
	return m
}

// Registry returns the registry the collectors live on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Publish implements Publisher
func (m *Metrics) Publish(s Snapshot) {
	if m == nil {
		return
	}
	if s.Hashrate != nil {
		m.hashrate.Set(*s.Hashrate)
	} else {
		m.hashrate.Set(math.NaN())
	}
	if v, ok := s.Chart.Latest(); ok {
		m.latest.Set(v)
	} else {
		m.latest.Set(math.NaN())
	}
	m.difficulty.Set(s.Network.Difficulty)
	m.lastUpdate.Set(float64(s.UpdatedAt.UnixNano()) / 1e9)
	m.samples.Set(float64(s.Chart.Len()))
	m.excluded.Set(float64(s.Excluded))
}

func (m *Metrics) observeFailure(endpoint string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(endpoint).Inc()
}

func (m *Metrics) observeSuperseded() {
	if m == nil {
		return
	}
	m.superseded.Inc()
}
