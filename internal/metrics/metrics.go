// Package metrics exposes process metrics in the Prometheus text format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "iowasensors"

// Metrics owns a private registry and the collectors updated by the client.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	consoleRequests *prometheus.CounterVec
	chatFrames      *prometheus.CounterVec
	chatConnects    *prometheus.CounterVec
	boardOrders     *prometheus.GaugeVec
	refreshRuns     *prometheus.CounterVec
}

// New creates metrics registered on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Requests sent to the store backend.",
		}, []string{"endpoint", "code"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Round trip time of store backend requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		consoleRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "console",
			Name:      "requests_total",
			Help:      "Requests served by the console API.",
		}, []string{"method", "route", "status"}),
		chatFrames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "frames_total",
			Help:      "Chat frames by direction and outcome.",
		}, []string{"direction", "result"}),
		chatConnects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "connects_total",
			Help:      "Chat socket dial attempts by outcome.",
		}, []string{"result"}),
		boardOrders: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "board",
			Name:      "orders",
			Help:      "Orders currently held per admin board bucket.",
		}, []string{"bucket"}),
		refreshRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "refresher",
			Name:      "runs_total",
			Help:      "Admin order refresh cycles by outcome.",
		}, []string{"result"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.backendRequests,
		m.backendDuration,
		m.consoleRequests,
		m.chatFrames,
		m.chatConnects,
		m.boardOrders,
		m.refreshRuns,
	)
	return m
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveBackend records one backend round trip. code is 0 for transport errors.
func (m *Metrics) ObserveBackend(endpoint string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.backendRequests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	m.backendDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveConsole(method, route string, status int) {
	if m == nil {
		return
	}
	m.consoleRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// ChatFrame counts an inbound or outbound frame; result is "ok" or a failure reason.
func (m *Metrics) ChatFrame(direction, result string) {
	if m == nil {
		return
	}
	m.chatFrames.WithLabelValues(direction, result).Inc()
}

func (m *Metrics) ChatConnect(result string) {
	if m == nil {
		return
	}
	m.chatConnects.WithLabelValues(result).Inc()
}

// SetBoardOrders publishes bucket sizes.
func (m *Metrics) SetBoardOrders(counts map[string]int) {
	if m == nil {
		return
	}
	for bucket, n := range counts {
		m.boardOrders.WithLabelValues(bucket).Set(float64(n))
	}
}

func (m *Metrics) RefreshRun(result string) {
	if m == nil {
		return
	}
	m.refreshRuns.WithLabelValues(result).Inc()
}
