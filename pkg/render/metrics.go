package render

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	renderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aclmgr_render_duration_seconds",
			Help:    "Duration of a single device/direction render in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	renderTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aclmgr_render_total",
			Help: "Total number of render attempts",
		},
		[]string{"status"}, // ok or error
	)
)
