package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goganux/texas-career-path-explorer/internal/config"
	httpadapter "github.com/goganux/texas-career-path-explorer/pkg/adapters/http"
	loamadapter "github.com/goganux/texas-career-path-explorer/pkg/adapters/loam"
	"github.com/goganux/texas-career-path-explorer/pkg/adapters/memory"
	redisadapter "github.com/goganux/texas-career-path-explorer/pkg/adapters/redis"
	"github.com/goganux/texas-career-path-explorer/pkg/market"
	"github.com/goganux/texas-career-path-explorer/pkg/ports"
	"github.com/goganux/texas-career-path-explorer/pkg/session"
)

// App is the wired set of adapters every command runs on.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Catalog  ports.CatalogRepository
	Pathways ports.PathwayRepository
	Market   ports.MarketSource
	Sessions *session.Manager
	Metrics  *httpadapter.Metrics

	closers []func() error
}

// NewApp builds the adapters selected by cfg.
// The catalog (interests, students, progress) always comes from the bundled seed.
func NewApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	catalog, err := memory.NewSeeded()
	if err != nil {
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}

	app := &App{
		Config:  cfg,
		Logger:  logger,
		Catalog: catalog,
		Market:  market.NewStatic(),
		Metrics: httpadapter.NewMetrics(),
	}

	switch cfg.Pathways.Source {
	case config.SourceLoam:
		repo, err := loamadapter.Open(cfg.Pathways.Dir, loamadapter.WithReadOnly(cfg.Pathways.ReadOnly))
		if err != nil {
			return nil, err
		}
		app.Pathways = repo
		logger.Debug("Using loam pathway source", "dir", cfg.Pathways.Dir, "read_only", cfg.Pathways.ReadOnly)
	default:
		app.Pathways = catalog
	}

	managerOpts := []session.Option{
		session.WithLogger(logger),
		session.WithHooks(app.Metrics.Hooks()),
		session.WithLockTTL(cfg.Sessions.LockTTL),
	}

	var store ports.SessionStore
	switch cfg.Sessions.Store {
	case config.StoreRedis:
		rs := redisadapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redisadapter.WithTTL(cfg.Sessions.TTL),
			redisadapter.WithPrefix(cfg.Redis.Prefix),
		)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, fmt.Errorf("redis unavailable at %s: %w", cfg.Redis.Addr, err)
		}
		app.closers = append(app.closers, rs.Close)
		store = rs
		managerOpts = append(managerOpts, session.WithLocker(redisadapter.NewLocker(rs.Client(), cfg.Redis.Prefix)))
		logger.Debug("Using redis session store", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
	default:
		store = memory.NewStore()
	}

	app.Sessions = session.NewManager(store, app.Pathways, managerOpts...)
	return app, nil
}

// Lister returns the pathway source as a PathwayLister when it supports enumeration.
func (a *App) Lister() (ports.PathwayLister, bool) {
	l, ok := a.Pathways.(ports.PathwayLister)
	return l, ok
}

// Close releases backend connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
