// Package scraper fetches RSS/Atom feeds to learn their titles.
// It uses the gofeed library to parse feed content with reliability patterns.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"feedshelf/internal/resilience/circuitbreaker"
	"feedshelf/internal/resilience/retry"
)

// ErrNoTitle is returned when a feed parses but declares no title.
var ErrNoTitle = errors.New("feed has no title")

// Config tunes a FeedTitleResolver.
type Config struct {
	// Timeout bounds a single fetch attempt. Default: 20s
	Timeout time.Duration
	// RatePerSecond limits outbound requests across all callers. Default: 5
	RatePerSecond float64
	// Burst is the number of requests allowed at once. Default: 1
	Burst int
	// UserAgent is sent with every request. Default: "feedshelf"
	UserAgent string
	// Client overrides the HTTP client; when nil one is built from Timeout.
	Client *http.Client
	// Retry overrides retry.FeedTitleConfig.
	Retry *retry.Config
}

// FeedTitleResolver looks up the declared title of a feed. It is safe for
// concurrent use; every call shares one rate limiter and circuit breaker.
type FeedTitleResolver struct {
	client         *http.Client
	userAgent      string
	timeout        time.Duration
	limiter        *rate.Limiter
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewFeedTitleResolver builds a resolver, filling unset fields with defaults.
func NewFeedTitleResolver(cfg Config) *FeedTitleResolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "feedshelf"
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	retryConfig := retry.FeedTitleConfig()
	if cfg.Retry != nil {
		retryConfig = *cfg.Retry
	}

	return &FeedTitleResolver{
		client:         client,
		userAgent:      cfg.UserAgent,
		timeout:        cfg.Timeout,
		limiter:        rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedTitleConfig()),
		retryConfig:    retryConfig,
	}
}

// ResolveTitle fetches feedURL and returns its trimmed title.
func (r *FeedTitleResolver) ResolveTitle(ctx context.Context, feedURL string) (string, error) {
	var title string

	retryErr := retry.WithBackoff(ctx, r.retryConfig, func() error {
		if err := r.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}

		fetched, err := circuitbreaker.Do(r.circuitBreaker, func() (string, error) {
			return r.doFetch(ctx, feedURL)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed title circuit breaker open, request rejected",
					slog.String("service", r.circuitBreaker.Name()),
					slog.String("url", feedURL))
			}
			return err
		}

		title = fetched
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("resolve title %s: %w", feedURL, retryErr)
	}

	return title, nil
}

// doFetch performs one fetch without retry or circuit breaker.
func (r *FeedTitleResolver) doFetch(ctx context.Context, feedURL string) (string, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	fp := gofeed.NewParser()
	fp.UserAgent = r.userAgent
	fp.Client = r.client

	feed, err := fp.ParseURLWithContext(feedURL, fetchCtx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return "", &retry.HTTPError{StatusCode: httpErr.StatusCode, Message: httpErr.Status, URL: feedURL}
		}
		return "", err
	}

	title := strings.TrimSpace(feed.Title)
	if title == "" {
		return "", ErrNoTitle
	}
	return title, nil
}
