package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	ImportRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "import_rows_total",
		Help: "Import rows processed by outcome (created, updated, preserved, failed)",
	}, []string{"outcome"})

	CartonsAssignedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cartons_assigned_total",
		Help: "Carton allocations committed to the pallet ledger",
	})

	StatusRecalculationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "status_recalculations_total",
		Help: "Line statuses changed by reconciliation passes",
	})
)
