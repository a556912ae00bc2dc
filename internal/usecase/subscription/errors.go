// Package subscription converts between folder managers and OPML documents
// and implements the load, save, mirror and name resolution use cases.
package subscription

import "errors"

// DefaultTitle is written to the document head when the service has none.
const DefaultTitle = "Subscriptions"

// Sentinel errors for subscription use case operations.
var (
	// ErrRepositoryNotConfigured is returned by Push and Pull when the
	// service has no subscription repository.
	ErrRepositoryNotConfigured = errors.New("subscription repository not configured")

	// ErrResolverNotConfigured is returned by ResolveNames when the service
	// has no title resolver.
	ErrResolverNotConfigured = errors.New("title resolver not configured")
)
