// Package metrics exposes Prometheus counters for the dashboard service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for upstream calls.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_upstream_requests_total",
		Help: "Upstream review API calls by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	statsCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_stats_cache_lookups_total",
		Help: "Statistics cache lookups by result.",
	}, []string{"result"})

	itemActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_item_actions_total",
		Help: "Item actions (flag, dismiss, escalate, delete) by action and outcome.",
	}, []string{"action", "outcome"})
)

// RecordUpstreamRequest counts one upstream call.
func RecordUpstreamRequest(endpoint, outcome string) {
	upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

// RecordCacheLookup counts one statistics cache lookup.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	statsCacheLookups.WithLabelValues(result).Inc()
}

// RecordItemAction counts one item action.
func RecordItemAction(action, outcome string) {
	itemActions.WithLabelValues(action, outcome).Inc()
}

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
