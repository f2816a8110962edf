package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "attendance_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	AuthEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_auth_events_total",
			Help: "Authentication flow events by outcome",
		},
		[]string{"event", "outcome"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attendance_notifications_total",
			Help: "Outgoing email notifications by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
)

// ObserveAuth records one authentication event
func ObserveAuth(event string, err error) {
	AuthEventsTotal.WithLabelValues(event, outcome(err)).Inc()
}

// ObserveNotification records one notification attempt
func ObserveNotification(kind string, err error) {
	NotificationsTotal.WithLabelValues(kind, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
