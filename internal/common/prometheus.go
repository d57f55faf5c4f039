package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	NotificationDroppedTotal   = "notification_dropped_total"
	WebsocketSessionsActive    = "websocket_sessions_active"
)

var (
	PromGauges = map[string]*prometheus.GaugeVec{
		WebsocketSessionsActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: WebsocketSessionsActive,
			Help: "Number of currently connected websocket sessions",
		}, []string{"channel"}),
	}

	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		NotificationDroppedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: NotificationDroppedTotal,
			Help: "Count of notification events dropped on slow sessions",
		}, []string{"channel"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
	}

	PromSummaries = map[string]*prometheus.SummaryVec{}
)
