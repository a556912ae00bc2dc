package subscription

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"feedshelf/internal/domain/entity"
	"feedshelf/internal/observability/metrics"
)

const defaultResolveParallelism = 4

// TitleResolver looks up the declared title of a feed.
type TitleResolver interface {
	ResolveTitle(ctx context.Context, feedURL string) (string, error)
}

// ResolveNames names every unnamed source of m after its feed's title and
// returns how many sources were named.
//
// Lookups run concurrently, at most ResolveParallelism at a time, and their
// results are applied to m on the calling goroutine once all have finished.
// A failed lookup is logged and leaves that source unnamed, as does a title
// already used in the folder the source is written to. Cancellation of
// ctx aborts the run and leaves m untouched.
func (s *Service) ResolveNames(ctx context.Context, m *entity.Manager) (named int, err error) {
	if s.Resolver == nil {
		return 0, ErrResolverNotConfigured
	}

	var (
		pending []*entity.Source
		owners  []*entity.Folder
	)
	for _, f := range m.Folders() {
		for _, src := range f.Sources {
			if !src.Named() {
				pending = append(pending, src)
				owners = append(owners, f)
			}
		}
	}

	ctx, logger, done := observe(ctx, "resolve", attribute.Int("sources.pending", len(pending)))
	defer func() { done(err) }()

	if len(pending) == 0 {
		return 0, nil
	}

	limit := s.ResolveParallelism
	if limit <= 0 {
		limit = defaultResolveParallelism
	}

	titles := make([]string, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, src := range pending {
		if gctx.Err() != nil {
			break
		}
		i := i
		feedURL := src.URL
		g.Go(func() error {
			title, err := s.Resolver.ResolveTitle(gctx, feedURL)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				metrics.RecordTitleResolution(false)
				logger.Warn("failed to resolve feed title",
					slog.String("url", feedURL),
					slog.Any("error", err))
				return nil
			}
			metrics.RecordTitleResolution(true)
			titles[i] = title
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("resolve names: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("resolve names: %w", err)
	}

	for i, title := range titles {
		if title == "" {
			continue
		}
		if nameTaken(m, owners[i], title, pending[i]) {
			logger.Warn("feed title already used in folder, leaving unnamed",
				slog.String("url", pending[i].URL),
				slog.String("folder", owners[i].Name),
				slog.String("title", title))
			continue
		}
		pending[i].Name = title
		named++
	}

	logger.Info("feed titles resolved",
		slog.Int("pending", len(pending)),
		slog.Int("named", named))
	return named, nil
}
