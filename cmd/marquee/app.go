package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vmunix/marquee/internal/cache"
	"github.com/vmunix/marquee/internal/catalog"
	"github.com/vmunix/marquee/internal/config"
	"github.com/vmunix/marquee/internal/favorites"
	"github.com/vmunix/marquee/internal/omdb"
	"github.com/vmunix/marquee/internal/recent"
	"github.com/vmunix/marquee/internal/retry"
	"github.com/vmunix/marquee/internal/storage"
)

// app wires the services one command invocation needs.
type app struct {
	cfg     *config.Config
	cfgPath string
	log     *slog.Logger

	kv        storage.KV
	catalog   *catalog.Service
	favorites *favorites.Store
	recent    *recent.List
}

func newApp(ctx context.Context, o *rootOptions, stderr io.Writer) (*app, error) {
	cfg, path, err := config.Resolve(o.configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	logger := newLogger(level, stderr)
	if path != "" {
		logger.Debug("loaded config", "path", path)
	} else {
		logger.Debug("no config file found, using defaults")
	}

	kv, err := storage.Open(storage.Config{Driver: cfg.Storage.Driver, Path: cfg.Storage.Path})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	policy := retry.New(cfg.Retry.MaxAttempts, cfg.Retry.BaseDelay)
	policy.Log = logger.With("component", "retry")

	client := omdb.NewClient(cfg.OMDb.APIKey,
		omdb.WithBaseURL(cfg.OMDb.BaseURL),
		omdb.WithHTTPClient(&http.Client{Timeout: cfg.OMDb.Timeout}),
		omdb.WithRetry(policy),
		omdb.WithRateLimit(cfg.OMDb.RateLimit, cfg.OMDb.Burst),
		omdb.WithLogger(logger),
	)

	svc := catalog.New(client, cache.New[any](cache.WithTTL(cfg.Cache.TTL)), catalog.Options{
		Seeds:            cfg.Trending.Seeds,
		TrendingLimit:    cfg.Trending.Limit,
		BestEffort:       cfg.Trending.BestEffort,
		BatchConcurrency: cfg.Batch.Concurrency,
	}, logger.With("component", "catalog"))

	return &app{
		cfg:       cfg,
		cfgPath:   path,
		log:       logger,
		kv:        kv,
		catalog:   svc,
		favorites: favorites.New(ctx, kv, logger.With("component", "favorites")),
		recent:    recent.New(ctx, kv, logger.With("component", "recent")),
	}, nil
}

func (a *app) Close() error {
	return a.kv.Close()
}
