package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the client core.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP client metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	RequestErrors    *prometheus.CounterVec

	// Audio metrics
	CuesPlayed   *prometheus.CounterVec
	TonesPlayed  prometheus.Counter
	AudioFailure prometheus.Counter

	// Theme metrics
	ThemeChanges *prometheus.CounterVec

	// Snapshot for status output
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current values for human-readable status output.
type Snapshot struct {
	TotalRequests int64
	TotalErrors   int64
	TotalDuration float64
	CuesPlayed    int64
}

// NewMetrics creates a metrics collector on its own registry, so several
// instances can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamifier_api_requests_total",
				Help: "Total number of API requests by method and status class",
			},
			[]string{"method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gamifier_api_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "gamifier_api_requests_in_flight",
				Help: "Number of API requests currently in flight",
			},
		),
		RequestErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamifier_api_request_errors_total",
				Help: "Total number of failed API requests by kind",
			},
			[]string{"method", "kind"},
		),

		CuesPlayed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamifier_audio_cues_total",
				Help: "Total number of audio cues scheduled",
			},
			[]string{"cue"},
		),
		TonesPlayed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gamifier_audio_tones_total",
				Help: "Total number of tones rendered",
			},
		),
		AudioFailure: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gamifier_audio_failures_total",
				Help: "Total number of swallowed audio failures",
			},
		),

		ThemeChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamifier_theme_changes_total",
				Help: "Total number of applied theme changes",
			},
			[]string{"theme"},
		),
	}
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteToFile dumps all metrics in the Prometheus text format.
func (m *Metrics) WriteToFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// RecordRequest records a settled API request. status is 0 for network failures.
func (m *Metrics) RecordRequest(method string, status int, duration time.Duration) {
	class := StatusClass(status)
	m.RequestsTotal.WithLabelValues(method, class).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	if status == 0 || status >= 400 {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordRequestError records a failed request by error kind.
func (m *Metrics) RecordRequestError(method, kind string) {
	m.RequestErrors.WithLabelValues(method, kind).Inc()
}

// SetInFlight mirrors the loading counter.
func (m *Metrics) SetInFlight(count int) {
	m.RequestsInFlight.Set(float64(count))
}

// IncCue records a scheduled cue.
func (m *Metrics) IncCue(cue string) {
	m.CuesPlayed.WithLabelValues(cue).Inc()
	m.mu.Lock()
	m.snapshot.CuesPlayed++
	m.mu.Unlock()
}

// IncTone records a rendered tone.
func (m *Metrics) IncTone() {
	m.TonesPlayed.Inc()
}

// IncAudioFailure records a swallowed audio failure.
func (m *Metrics) IncAudioFailure() {
	m.AudioFailure.Inc()
}

// IncThemeChange records an applied theme.
func (m *Metrics) IncThemeChange(theme string) {
	m.ThemeChanges.WithLabelValues(theme).Inc()
}

// Snapshot returns a copy of the current snapshot.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// StatusClass buckets an HTTP status into "2xx".."5xx", or "network" for 0.
func StatusClass(status int) string {
	if status <= 0 {
		return "network"
	}
	return strconv.Itoa(status/100) + "xx"
}
