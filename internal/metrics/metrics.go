package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Gateway and tool dispatch metrics
var (
	RemoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "klicstudio_requests_total",
			Help: "Total number of requests sent to the KlicStudio service.",
		},
		[]string{"endpoint", "outcome"},
	)

	RemoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "klicstudio_request_duration_seconds",
			Help:    "Duration of requests to the KlicStudio service.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Total number of MCP tool invocations.",
		},
		[]string{"tool", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		RemoteRequestsTotal,
		RemoteRequestDuration,
		ToolCallsTotal,
	)
}
