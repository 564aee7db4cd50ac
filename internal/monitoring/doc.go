// Package monitoring provides Prometheus metrics for the panel backend.
//
// Metrics cover the HTTP surface (request counts and latency), the panel
// lifecycle (shown/hidden/destroyed/replaced counters, active gauge, show
// failures by reason), the data channel (published vs dropped payloads,
// live subscriptions), and the WebSocket event stream.
//
// Collectors registered through NewMetrics use the default Prometheus
// registry; tests should use NewMetricsWithRegistry with a fresh registry
// to avoid duplicate registration panics.
package monitoring
