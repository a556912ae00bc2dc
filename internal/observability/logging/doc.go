// Package logging builds slog loggers for feedshelf and carries them
// through context.
//
// Commands create one logger from the configured format and level and store
// it with WithLogger; lower layers fetch it with FromContext and tag it per
// operation:
//
//	logger := logging.WithOperation(ctx, logging.FromContext(ctx), "save")
//	logger.Info("subscriptions saved", slog.Int("sources", 12))
//
// Every entry of one operation shares an operation_id.
package logging
