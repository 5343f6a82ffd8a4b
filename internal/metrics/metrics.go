package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReadingsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_readings_generated_total",
			Help: "Total number of meter readings generated, by status",
		},
		[]string{"status"},
	)

	AlertNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_alert_notifications_total",
			Help: "Alert notification attempts by provider and result",
		},
		[]string{"provider", "result"},
	)

	InsightRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_insight_requests_total",
			Help: "Insight generations by result",
		},
		[]string{"result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "campus_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route", "status"},
	)
)
