// Package metrics defines the prometheus instruments shared across packages.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream call metrics
var (
	// UpstreamRequestsTotal tracks outbound backend calls by backend and status
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total upstream backend requests by backend and status",
		},
		[]string{"backend", "status"},
	)

	// UpstreamRequestDuration tracks outbound call latency in seconds
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Upstream backend request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"backend"},
	)
)

// Overview aggregation metrics
var (
	// OverviewSlotFailures counts backend slots downgraded to an error marker
	OverviewSlotFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "overview_slot_failures_total",
			Help: "Overview slots filled with an error marker, by backend",
		},
		[]string{"backend"},
	)
)

// Auth gate metrics
var (
	// AuthVerificationsTotal counts token verifications by result (ok/invalid/error)
	AuthVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_verifications_total",
			Help: "Token verifications against the identity provider, by result",
		},
		[]string{"result"},
	)
)
