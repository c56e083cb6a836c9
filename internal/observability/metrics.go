package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	httpErrorsTotal       *prometheus.CounterVec
	activityRecordedTotal *prometheus.CounterVec
	undoTotal             *prometheus.CounterVec
	authFailuresTotal     *prometheus.CounterVec
	announcementsCache    *prometheus.CounterVec
	emailDeliveriesTotal  *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "erp_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "erp_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "erp_http_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		activityRecordedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "erp_activity_recorded_total",
			Help: "Activity log writes by action type and outcome.",
		}, []string{"action_type", "outcome"})

		undoTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "erp_undo_total",
			Help: "Undo attempts by original action type and outcome.",
		}, []string{"action_type", "outcome"})

		authFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "erp_auth_failures_total",
			Help: "Rejected logins and session checks by reason.",
		}, []string{"reason"})

		announcementsCache = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "erp_announcements_cache_total",
			Help: "Announcement list lookups by cache result.",
		}, []string{"result"})

		emailDeliveriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "erp_email_deliveries_total",
			Help: "Outbound email attempts by outcome.",
		}, []string{"outcome"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			activityRecordedTotal,
			undoTotal,
			authFailuresTotal,
			announcementsCache,
			emailDeliveriesTotal,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// ActivityRecorded exposes the counter for activity log writes.
func ActivityRecorded() *prometheus.CounterVec {
	RegisterMetrics()
	return activityRecordedTotal
}

// UndoAttempts exposes the counter for undo outcomes.
func UndoAttempts() *prometheus.CounterVec {
	RegisterMetrics()
	return undoTotal
}

// AuthFailures exposes the counter for rejected authentication.
func AuthFailures() *prometheus.CounterVec {
	RegisterMetrics()
	return authFailuresTotal
}

// AnnouncementsCache exposes the counter for announcement cache lookups.
func AnnouncementsCache() *prometheus.CounterVec {
	RegisterMetrics()
	return announcementsCache
}

// EmailDeliveries exposes the counter for outbound email.
func EmailDeliveries() *prometheus.CounterVec {
	RegisterMetrics()
	return emailDeliveriesTotal
}
