package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// SwitchSessions counts finished switch sessions by outcome (succeeded, failed).
	SwitchSessions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "switch_sessions_total",
		Help: "Network switch sessions that reached a terminal state, by outcome.",
	}, []string{"outcome"})

	// WalletRequests counts wallet RPC requests by method and result (ok, error).
	WalletRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_requests_total",
		Help: "Wallet RPC requests issued, by method and result.",
	}, []string{"method", "result"})

	// TelemetryEvents counts analytics events by category, action and label.
	TelemetryEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "telemetry_events_total",
		Help: "Analytics events emitted by the application.",
	}, []string{"category", "action", "label"})

	// ProbeLatency observes eth_chainId round trips against network RPC endpoints.
	ProbeLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rpc_probe_latency_seconds",
		Help:    "Latency of eth_chainId probes against RPC endpoints.",
		Buckets: prometheus.DefBuckets,
	}, []string{"chain_id", "healthy"})

	// SessionStreams is the number of open switch-session websocket streams.
	SessionStreams = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "switch_session_streams",
		Help: "Open websocket streams of switch session transitions.",
	})

	registerOnce sync.Once
)

// MustRegisterMetrics registers all collectors with the default registry.
// Safe to call more than once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(SwitchSessions)
		prometheus.MustRegister(WalletRequests)
		prometheus.MustRegister(TelemetryEvents)
		prometheus.MustRegister(ProbeLatency)
		prometheus.MustRegister(SessionStreams)
	})
}
