// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "foodtruck"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RollupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rollups_total", Help: "Derived value recomputations by kind and result"},
		[]string{"kind", "result"},
	)
	GeocodesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "geocodes_total", Help: "Geocoder lookups by result"},
		[]string{"result"},
	)
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "photo_uploads_total", Help: "Photo uploads by result"},
		[]string{"result"},
	)
	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "events_published_total", Help: "Domain events by type and result"},
		[]string{"type", "result"},
	)
	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "ws_connections", Help: "Open message websocket connections"})
)
