package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"feedshelf/internal/config"
	"feedshelf/internal/domain/entity"
	"feedshelf/internal/infra/adapter/persistence/file"
	"feedshelf/internal/infra/adapter/persistence/postgres"
	"feedshelf/internal/infra/adapter/persistence/sqlite"
	"feedshelf/internal/infra/db"
	"feedshelf/internal/infra/scraper"
	"feedshelf/internal/observability/logging"
	"feedshelf/internal/repository"
	"feedshelf/internal/resilience/circuitbreaker"
	"feedshelf/internal/usecase/subscription"
)

// app bundles what every command needs: configuration, a logger, the
// subscription service and the manager loaded from the OPML file.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	svc     *subscription.Service
	manager *entity.Manager
}

// newApp loads configuration and builds the service for cmd.
func newApp(cmd *cobra.Command) (*app, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	filePath, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, err
	}
	if filePath != "" {
		cfg.File = filePath
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}
	level := slog.LevelInfo
	if verbose || cfg.Debug() {
		level = slog.LevelDebug
	}
	logger := logging.New(cmd.ErrOrStderr(), cfg.Log.Format, level)
	slog.SetDefault(logger)

	return &app{
		cfg:    cfg,
		logger: logger,
		svc: &subscription.Service{
			Store:              file.NewStore(),
			Title:              cfg.Title,
			ResolveParallelism: cfg.Resolve.Parallelism,
		},
		manager: entity.NewManagerWithDefault(cfg.DefaultFolder),
	}, nil
}

// context attaches the app logger, tagged with the command, to the command
// context. Every operation the command runs shares one operation ID.
func (a *app) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.ContextWithOperationID(ctx, uuid.New().String())
	logger := logging.WithFields(a.logger, map[string]interface{}{"command": cmd.CommandPath()})
	return logging.WithLogger(ctx, logger)
}

// load reads the subscription file. A file that does not exist yet leaves
// the manager empty.
func (a *app) load(ctx context.Context) error {
	if _, err := os.Stat(a.cfg.File); errors.Is(err, fs.ErrNotExist) {
		a.logger.Debug("subscription file not found, starting empty", slog.String("path", a.cfg.File))
		return nil
	}
	return a.svc.LoadFile(ctx, a.manager, a.cfg.File)
}

func (a *app) save(ctx context.Context) error {
	return a.svc.SaveFile(ctx, a.manager, a.cfg.File)
}

// openRepository connects to the configured mirror database, migrates it and
// attaches the repository to the service. The returned function closes the
// connection.
func (a *app) openRepository(ctx context.Context) (func() error, error) {
	conn, err := db.Open(ctx, a.cfg.Database.Driver, a.cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	guarded := circuitbreaker.NewDBCircuitBreaker(conn)
	if err := db.MigrateUp(ctx, guarded, a.cfg.Database.Driver); err != nil {
		_ = conn.Close()
		return nil, err
	}

	var repo repository.SubscriptionRepository
	switch a.cfg.Database.Driver {
	case db.DriverPostgres:
		repo = postgres.NewSubscriptionRepo(guarded)
	default:
		repo = sqlite.NewSubscriptionRepo(guarded)
	}
	a.svc.Repo = repo
	return conn.Close, nil
}

// attachResolver configures the feed title resolver from the resolve settings.
func (a *app) attachResolver() {
	a.svc.Resolver = scraper.NewFeedTitleResolver(scraper.Config{
		Timeout:       a.cfg.Resolve.Timeout,
		RatePerSecond: a.cfg.Resolve.RatePerSecond,
		UserAgent:     a.cfg.Resolve.UserAgent,
	})
}

// folderLabel names a folder for output, marking the default folder.
func (a *app) folderLabel(f *entity.Folder) string {
	if a.manager.IsDefault(f) {
		return fmt.Sprintf("%s (default)", f.Name)
	}
	return f.Name
}
