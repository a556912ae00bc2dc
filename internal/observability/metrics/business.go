package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func status(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// RecordOperation records the outcome and duration of a subscription
// operation such as "load", "save", "push" or "pull".
func RecordOperation(operation string, success bool, duration time.Duration) {
	OperationsTotal.WithLabelValues(operation, status(success)).Inc()
	OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDocumentSize records the size in bytes of an OPML document read or written.
func RecordDocumentSize(operation string, size int) {
	DocumentSize.WithLabelValues(operation).Observe(float64(size))
}

// UpdateSubscriptionTotals sets the folder and source gauges.
func UpdateSubscriptionTotals(folders, sources int) {
	FoldersTotal.Set(float64(folders))
	SourcesTotal.Set(float64(sources))
}

// RecordTitleResolution records the result of a single feed title lookup.
func RecordTitleResolution(success bool) {
	TitleResolutionsTotal.WithLabelValues(status(success)).Inc()
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, for pickup by a node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
