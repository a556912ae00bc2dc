// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Document metrics track OPML load/save and database sync operations
var (
	// OperationsTotal counts subscription operations by operation and status
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscription_operations_total",
			Help: "Total number of subscription load, save, push and pull operations",
		},
		[]string{"operation", "status"},
	)

	// OperationDuration measures subscription operation duration in seconds
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "subscription_operation_duration_seconds",
			Help:    "Subscription operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation"},
	)

	// DocumentSize measures the size of OPML documents read or written
	DocumentSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opml_document_size_bytes",
			Help:    "Size of OPML documents read or written in bytes",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"operation"},
	)
)

// Subscription metrics track the current state of the loaded manager
var (
	// FoldersTotal tracks the number of folders, default folder included
	FoldersTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "subscription_folders",
			Help: "Number of folders in the subscription set",
		},
	)

	// SourcesTotal tracks the number of sources across all folders
	SourcesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "subscription_sources",
			Help: "Number of feed sources in the subscription set",
		},
	)

	// TitleResolutionsTotal counts feed title lookups by status
	TitleResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_title_resolutions_total",
			Help: "Total number of feed title resolutions",
		},
		[]string{"status"},
	)
)
