package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Panel lifecycle metrics
	PanelsShown     *prometheus.CounterVec
	PanelsHidden    *prometheus.CounterVec
	PanelsDestroyed *prometheus.CounterVec
	PanelsReplaced  *prometheus.CounterVec
	PanelsActive    prometheus.Gauge
	ShowFailures    *prometheus.CounterVec

	// Data channel metrics
	DataPublished prometheus.Counter
	DataDropped   prometheus.Counter
	Subscribers   prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSEvents      prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates a collector bound to a specific registerer,
// so tests can use isolated registries.
func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panelos_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "panelos_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		PanelsShown: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panelos_panels_shown_total",
				Help: "Total number of completed show operations",
			},
			[]string{"kind"},
		),
		PanelsHidden: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panelos_panels_hidden_total",
				Help: "Total number of completed hide operations",
			},
			[]string{"kind"},
		),
		PanelsDestroyed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panelos_panels_destroyed_total",
				Help: "Total number of destroyed panels",
			},
			[]string{"kind"},
		),
		PanelsReplaced: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panelos_panels_replaced_total",
				Help: "Registrations that overwrote an existing record",
			},
			[]string{"kind"},
		),
		PanelsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "panelos_panels_active",
				Help: "Number of currently active panels",
			},
		),
		ShowFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panelos_show_failures_total",
				Help: "Show operations that returned no panel",
			},
			[]string{"kind", "reason"},
		),

		DataPublished: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "panelos_data_published_total",
				Help: "Payloads delivered to at least one subscriber",
			},
		),
		DataDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "panelos_data_dropped_total",
				Help: "Payloads published to a key with no subscribers",
			},
		),
		Subscribers: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "panelos_data_subscribers",
				Help: "Number of live data channel subscriptions",
			},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "panelos_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSEvents: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "panelos_ws_events_total",
				Help: "Lifecycle events pushed to WebSocket clients",
			},
		),

		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "panelos_uptime_seconds",
				Help: "Backend uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// RecordHTTPRequest records metrics for an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// UpdateUptime refreshes the uptime gauge
func (m *Metrics) UpdateUptime() {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.UpdateUptime()
	}
}
