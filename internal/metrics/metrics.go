package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "panel_gateway_requests_total",
			Help: "Total number of calls to the remote auth API",
		},
		[]string{"op", "outcome"},
	)

	GatewayRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "panel_gateway_request_duration_seconds",
			Help:    "Duration of calls to the remote auth API in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	SessionAuthenticated = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "panel_session_authenticated",
			Help: "1 while the client session holds both a user and a token",
		},
	)

	SessionTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "panel_session_transitions_total",
			Help: "Session state transitions by reason",
		},
		[]string{"reason"},
	)

	PageRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "panel_page_requests_total",
			Help: "Total number of page requests served",
		},
		[]string{"method", "route", "status"},
	)

	PageRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "panel_page_request_duration_seconds",
			Help:    "Duration of page requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
