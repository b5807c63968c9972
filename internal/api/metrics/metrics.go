// Package metrics defines and registers all custom Prometheus metrics for the
// blog API. It is the single source of truth for metric names, labels, and
// help strings. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// GraphQLOperationsTotal counts resolved GraphQL operations.
// Labels:
//   - operation: schema field name (e.g. "createPost")
//   - status: "ok" or "error"
var GraphQLOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graphql_operations_total",
		Help:      "Total number of GraphQL operations resolved, by operation and status.",
	},
	[]string{"operation", "status"},
)

// UploadsTotal counts image upload attempts.
// Label:
//   - result: "stored", "no_file", "unsupported_type", "unauthorized", "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of image upload requests, by result.",
	},
	[]string{"result"},
)

// ImageCleanupErrorsTotal counts failed best-effort image deletions.
var ImageCleanupErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_cleanup_errors_total",
		Help:      "Total number of stale image files that could not be removed.",
	},
)

// PostCacheTotal counts posts-page cache lookups.
// Label:
//   - result: "hit" or "miss"
var PostCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_cache_total",
		Help:      "Total number of posts-page cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
