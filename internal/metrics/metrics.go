// Package metrics holds the prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	OptimalPlans = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "optimal_plans_total",
		Help: "Optimal plan computations by outcome.",
	}, []string{"outcome"})

	AllocationWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "allocation_writes_total",
		Help: "Allocation ledger writes by operation and result.",
	}, []string{"op", "result"})

	CardSyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "card_sync_runs_total",
		Help: "Catalog sync runs by result.",
	}, []string{"result"})
)
