package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Database Metrics
	DBQueryDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"query_type", "repository", "status"})

	DBQueryErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "db_query_errors_total",
		Help: "Total number of failed database queries.",
	}, []string{"query_type", "repository"})

	// Resource Metrics
	EntitiesCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "app_entities_created_total",
		Help: "Total number of entities persisted through create requests.",
	}, []string{"resource"})

	PatchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "app_patches_total",
		Help: "Total number of patch requests by outcome.",
	}, []string{"resource", "outcome"}) // outcome: "changed", "unchanged" or "not_found"
)

// Register adds the application and runtime collectors to reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
		DBQueryDurationSeconds,
		DBQueryErrorsTotal,
		EntitiesCreatedTotal,
		PatchesTotal,
	)
}
