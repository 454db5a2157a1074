package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/nao1215/neocc/internal/config"
	"github.com/nao1215/neocc/internal/database"
	"github.com/nao1215/neocc/internal/fetch"
	"github.com/nao1215/neocc/internal/log"
	"github.com/nao1215/neocc/internal/query"
)

// app holds the components shared by the commands of one invocation.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *database.DB
	registry *prometheus.Registry
	query    *query.Client
}

// loadConfig builds the configuration from defaults, the config file, the
// environment and finally the global flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, err
	}
	if cfg.LogJSON, err = flags.GetBool("log-json"); err != nil {
		return nil, err
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return nil, err
	}
	cfg.NoCache = cfg.NoCache || noCache
	if flags.Changed("metrics-file") {
		if cfg.MetricsFile, err = flags.GetString("metrics-file"); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// setupLogger creates the secure logger selected by the configuration.
func setupLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	if cfg.LogJSON {
		return log.NewSecureJSONLogger(w, cfg.Verbose)
	}
	return log.NewSecureLogger(w, cfg.Verbose)
}

// newApp wires the transport, the optional cache and the query client.
// The database is opened when the cache is enabled or needDB is set.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, needDB bool) (*app, error) {
	a := &app{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	metrics := fetch.NewMetrics(a.registry)

	fetchOpts := []fetch.Option{
		fetch.WithHTTPClient(fetch.NewHTTPClient(cfg.Timeout)),
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithRateLimit(cfg.RequestsPerSecond),
		fetch.WithMetrics(metrics),
		fetch.WithLogger(logger),
	}

	if needDB || !cfg.NoCache {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.db = db
		logger.Debug("database opened", "path", db.Path())
	}

	if !cfg.NoCache {
		cache := database.NewDocumentCache(a.db)
		// Entries older than the max age are never served again.
		if n, err := cache.Purge(ctx, time.Now().Add(-cfg.CacheMaxAge)); err != nil {
			logger.Warn("failed to purge document cache", "error", err)
		} else if n > 0 {
			logger.Debug("purged stale documents", "count", n)
		}
		fetchOpts = append(fetchOpts, fetch.WithCache(cache, cfg.CacheMaxAge))
	}

	a.query = query.New(fetch.New(fetchOpts...),
		query.WithEndpoints(cfg.Endpoints()),
		query.WithRetryDelay(cfg.RetryDelay),
		query.WithMetrics(metrics),
		query.WithLogger(logger),
	)
	return a, nil
}

// Close writes the metrics file and closes the database.
func (a *app) Close() error {
	var errs []error
	if a.cfg.MetricsFile != "" {
		if err := fetch.WriteTextfile(a.cfg.MetricsFile, a.registry); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

// prepare loads and validates the configuration, then builds the app.
// configure applies the flags of the calling command.
func prepare(cmd *cobra.Command, needDB bool, configure func(*config.Config) error) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if configure != nil {
		if err := configure(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	return newApp(cmd.Context(), cfg, logger, needDB)
}
