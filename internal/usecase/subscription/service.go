package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"feedshelf/internal/domain/entity"
	"feedshelf/internal/observability/logging"
	"feedshelf/internal/observability/metrics"
	"feedshelf/internal/observability/tracing"
	"feedshelf/internal/opml"
	"feedshelf/internal/repository"
)

// Service provides subscription use cases.
// Store is required for LoadFile and SaveFile, Repo for Push and Pull, and
// Resolver for ResolveNames. The manager passed to each call is owned by the
// caller; Service never retains it.
type Service struct {
	Store    repository.DocumentStore
	Repo     repository.SubscriptionRepository
	Resolver TitleResolver

	// Title is written to saved documents. Default: DefaultTitle
	Title string
	// ResolveParallelism bounds concurrent title lookups. Default: 4
	ResolveParallelism int
}

// observe opens a span and an operation logger, and returns a function that
// closes the span and records the outcome. Pass it the operation's error.
func observe(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, *slog.Logger, func(error)) {
	start := time.Now()
	ctx, span := tracing.Start(ctx, "subscription."+op, attrs...)
	logger := logging.WithOperation(ctx, logging.FromContext(ctx), op)
	return ctx, logger, func(err error) {
		tracing.End(span, err)
		metrics.RecordOperation(op, err == nil, time.Since(start))
		if err != nil {
			logger.Error("operation failed", slog.Any("error", err))
		}
	}
}

// LoadFile reads the document at path and replaces m's contents with it.
// On any error m is left untouched. A missing file surfaces an error
// matching fs.ErrNotExist.
func (s *Service) LoadFile(ctx context.Context, m *entity.Manager, path string) (err error) {
	ctx, logger, done := observe(ctx, "load", attribute.String("opml.path", path))
	defer func() { done(err) }()

	data, err := s.Store.Read(ctx, path)
	if err != nil {
		return fmt.Errorf("load subscriptions: %w", err)
	}
	metrics.RecordDocumentSize("load", len(data))

	doc, err := opml.Decode(data)
	if err != nil {
		return fmt.Errorf("load subscriptions from %s: %w", path, err)
	}
	if err := Load(m, doc); err != nil {
		return fmt.Errorf("load subscriptions from %s: %w", path, err)
	}

	metrics.UpdateSubscriptionTotals(len(m.Folders()), m.SourceCount())
	logger.Info("subscriptions loaded",
		slog.String("path", path),
		slog.Int("folders", len(m.Folders())),
		slog.Int("sources", m.SourceCount()))
	return nil
}

// SaveFile writes m to path as an OPML document, replacing the file.
func (s *Service) SaveFile(ctx context.Context, m *entity.Manager, path string) (err error) {
	ctx, logger, done := observe(ctx, "save", attribute.String("opml.path", path))
	defer func() { done(err) }()

	doc, err := Dump(m, s.title())
	if err != nil {
		return fmt.Errorf("save subscriptions: %w", err)
	}
	data, err := opml.Encode(doc)
	if err != nil {
		return fmt.Errorf("save subscriptions: %w", err)
	}
	if err := s.Store.Write(ctx, path, data); err != nil {
		return fmt.Errorf("save subscriptions: %w", err)
	}
	metrics.RecordDocumentSize("save", len(data))
	metrics.UpdateSubscriptionTotals(len(m.Folders()), m.SourceCount())

	logger.Info("subscriptions saved",
		slog.String("path", path),
		slog.Int("bytes", len(data)),
		slog.Int("sources", m.SourceCount()))
	return nil
}

// Push mirrors every folder of m, default folder included, into the
// repository, replacing what it held.
func (s *Service) Push(ctx context.Context, m *entity.Manager) (err error) {
	ctx, logger, done := observe(ctx, "push")
	defer func() { done(err) }()

	if s.Repo == nil {
		return ErrRepositoryNotConfigured
	}

	folders := m.Folders()
	if err := s.Repo.ReplaceAll(ctx, folders); err != nil {
		return fmt.Errorf("push subscriptions: %w", err)
	}

	logger.Info("subscriptions pushed",
		slog.Int("folders", len(folders)),
		slog.Int("sources", m.SourceCount()))
	return nil
}

// Pull replaces m's contents with the folders stored in the repository.
// A stored folder carrying the default folder's name feeds the default
// folder. On any error m is left untouched.
func (s *Service) Pull(ctx context.Context, m *entity.Manager) (err error) {
	ctx, logger, done := observe(ctx, "pull")
	defer func() { done(err) }()

	if s.Repo == nil {
		return ErrRepositoryNotConfigured
	}

	folders, err := s.Repo.ListFolders(ctx)
	if err != nil {
		return fmt.Errorf("pull subscriptions: %w", err)
	}

	next := entity.NewManagerWithDefault(m.DefaultFolderName())
	for _, f := range folders {
		if f.Name == next.DefaultFolderName() {
			for _, src := range f.Sources {
				next.DefaultFolder().AddSource(src)
			}
			continue
		}
		if err := next.AddFolder(f); err != nil {
			return fmt.Errorf("pull folder %q: %w", f.Name, err)
		}
	}
	m.Replace(next)

	metrics.UpdateSubscriptionTotals(len(m.Folders()), m.SourceCount())
	logger.Info("subscriptions pulled",
		slog.Int("folders", len(m.Folders())),
		slog.Int("sources", m.SourceCount()))
	return nil
}

func (s *Service) title() string {
	if s.Title == "" {
		return DefaultTitle
	}
	return s.Title
}
