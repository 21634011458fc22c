// Package metrics registers the Prometheus collectors the repository and
// resource-manager layers report operation latency and outcome through.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	// RepositoryOperationDuration measures how long a Get/Exists/Upsert/
	// Delete call on the generic repository took, labelled by the
	// resource type name and the operation.
	RepositoryOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boxer_repository_operation_duration_seconds",
			Help:    "Duration of repository operations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"resource_type", "operation"},
	)

	// RepositoryConflictsTotal counts optimistic-concurrency conflicts the
	// spin-lock retry loop observed, per resource type and operation.
	RepositoryConflictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boxer_repository_conflicts_total",
			Help: "Total optimistic-concurrency conflicts observed during upsert/delete retries",
		},
		[]string{"resource_type", "operation"},
	)

	// RepositoryOperationErrorsTotal counts operations that returned a
	// non-nil Status, labelled by its Kind.
	RepositoryOperationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boxer_repository_operation_errors_total",
			Help: "Total repository operations that returned a non-nil status",
		},
		[]string{"resource_type", "operation", "kind"},
	)

	// CacheSize tracks the number of objects the resource manager's
	// reflector currently mirrors, per resource type.
	CacheSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "boxer_resource_manager_cache_size",
			Help: "Number of objects currently mirrored in the resource manager cache",
		},
		[]string{"resource_type"},
	)
)

func init() {
	metrics.Registry.MustRegister(
		RepositoryOperationDuration,
		RepositoryConflictsTotal,
		RepositoryOperationErrorsTotal,
		CacheSize,
	)
}
