// Package tracing provides OpenTelemetry tracing helpers.
//
// Spans are created through the global tracer provider, so the CLI and
// tests decide where spans go by installing a provider with
// otel.SetTracerProvider. Without one, spans are no-ops.
//
// Example usage:
//
//	ctx, span := tracing.Start(ctx, "subscription.LoadFile",
//	    attribute.String("opml.path", path))
//	defer func() { tracing.End(span, err) }()
package tracing
