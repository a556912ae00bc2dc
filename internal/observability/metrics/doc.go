// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - Subscription operation metrics (load, save, push, pull)
//   - OPML document sizes
//   - Folder and source counts
//   - Feed title resolution outcomes
//
// All metrics are automatically registered with the Prometheus default
// registry. The CLI is short-lived, so instead of serving /metrics it can
// dump the registry to a file with WriteTextfile.
//
// Example usage:
//
//	start := time.Now()
//	err := svc.SaveFile(ctx, m, path)
//	metrics.RecordOperation("save", err == nil, time.Since(start))
package metrics
