// Package retry re-runs flaky network calls, such as feed title fetches,
// with capped exponential backoff and jitter.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net"
	"net/http"
	"syscall"
	"time"

	"feedshelf/internal/observability/logging"
)

// Config controls WithBackoff.
type Config struct {
	// MaxAttempts counts the first call. Values below 1 mean a single call.
	MaxAttempts int
	// InitialDelay is the wait after the first failure.
	InitialDelay time.Duration
	// MaxDelay caps every wait before jitter is added.
	MaxDelay time.Duration
	// Multiplier grows the wait after each failure. Values below 1 keep it flat.
	Multiplier float64
	// JitterFraction adds up to this share of the wait at random (0.0 to 1.0).
	JitterFraction float64
}

// DefaultConfig returns a general purpose configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   1 * time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// FeedTitleConfig returns configuration for feed title fetches.
// Resolution runs while the user waits, so delays stay short.
func FeedTitleConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       5 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// Delay returns the wait that follows failed attempt n (counted from 1),
// before jitter.
func (c Config) Delay(n int) time.Duration {
	if n < 1 {
		n = 1
	}
	growth := c.Multiplier
	if growth < 1 {
		growth = 1
	}
	d := float64(c.InitialDelay) * math.Pow(growth, float64(n-1))
	if c.MaxDelay > 0 && d > float64(c.MaxDelay) {
		return c.MaxDelay
	}
	return time.Duration(d)
}

// WithBackoff calls fn until it succeeds, fails with an error IsRetryable
// rejects, or runs out of attempts. A non-retryable error is returned as is;
// exhaustion wraps the last error. Canceling ctx stops the wait between
// attempts.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	logger := logging.FromContext(ctx)

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 1 {
				logger.Debug("call succeeded after retry", slog.Int("attempt", attempt))
			}
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if attempt == attempts {
			return fmt.Errorf("gave up after %d attempts: %w", attempts, err)
		}

		wait := addJitter(cfg.Delay(attempt), cfg.JitterFraction)
		logger.Warn("call failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", attempts),
			slog.Duration("delay", wait),
			slog.Any("error", err))

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}
	}
}

// retryableStatus lists the HTTP status codes outside 5xx worth another try.
var retryableStatus = map[int]bool{
	http.StatusRequestTimeout:  true,
	http.StatusTooManyRequests: true,
}

// IsRetryable reports whether err looks transient: a network timeout, a
// refused or reset connection, a 5xx response, 408 or 429. Context errors
// are never retried.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ETIMEDOUT), errors.Is(err, syscall.ENETUNREACH):
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500 && httpErr.StatusCode < 600 || retryableStatus[httpErr.StatusCode]
	}
	return false
}

// HTTPError is a non-2xx response from a feed server.
type HTTPError struct {
	StatusCode int
	Message    string
	// URL is the requested feed, when known.
	URL string
}

func (e *HTTPError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("HTTP %d from %s: %s", e.StatusCode, e.URL, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// addJitter returns d plus a random share of d of at most fraction.
func addJitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 {
		return d
	}
	if fraction > 1.0 {
		fraction = 1.0
	}
	// #nosec G404 -- jitter needs no cryptographic randomness
	return d + time.Duration(rand.Float64()*float64(d)*fraction)
}
