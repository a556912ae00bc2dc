// Package observability groups the logging, metrics and tracing support used
// by feedshelf.
//
// Subpackages:
//   - logging: structured slog loggers carried through context
//   - metrics: Prometheus collectors for subscription operations, written to
//     a textfile after each command
//   - tracing: OpenTelemetry spans around service operations
//
// Example usage:
//
//	import (
//	    "log/slog"
//	    "os"
//
//	    "feedshelf/internal/observability/logging"
//	    "feedshelf/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.New(os.Stderr, logging.FormatJSON, slog.LevelInfo)
//	    logger.Info("subscriptions loaded")
//
//	    metrics.UpdateSubscriptionTotals(3, 42)
//	}
package observability
