// Package resilience groups the fault tolerance helpers used around network
// and database calls.
//
//   - circuitbreaker stops calling a feed host or the mirror database after
//     repeated failures
//   - retry repeats transient failures with exponential backoff and jitter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.FeedTitleConfig())
//	err := retry.WithBackoff(ctx, retry.FeedTitleConfig(), func() error {
//	    feed, err := circuitbreaker.Do(cb, func() (*gofeed.Feed, error) {
//	        return parser.ParseURLWithContext(url, ctx)
//	    })
//	    if err != nil {
//	        return err
//	    }
//	    title = feed.Title
//	    return nil
//	})
package resilience
