package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/internal/dashconfig"
	"github.com/wonny/c360/internal/selection"
	"github.com/wonny/c360/internal/source"
	"github.com/wonny/c360/pkg/config"
	"github.com/wonny/c360/pkg/database"
	"github.com/wonny/c360/pkg/logger"
	"github.com/wonny/c360/pkg/redis"
)

// runtime holds everything a command needs to answer queries
type runtime struct {
	cfg      *config.Config
	log      *logger.Logger
	dash     *dashconfig.Config
	stamp    dashconfig.Stamp
	db       *database.DB // nil unless the source is postgres
	redis    *redis.Client
	source   contracts.RecordSource
	snapshot *source.Snapshot
	pipeline *selection.Pipeline
}

// loadConfig reads the environment and applies global flag overrides.
// Non-server commands log to stderr at warn level unless --verbose.
func loadConfig(server bool) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if datasetPath != "" {
		cfg.Dataset.Path = datasetPath
	}
	if datasetSource != "" {
		cfg.Dataset.Source = strings.ToLower(datasetSource)
	}
	if datasetSheet != "" {
		cfg.Dataset.Sheet = datasetSheet
	}
	if dashboardConfig != "" {
		cfg.DashboardConfigPath = dashboardConfig
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	if server {
		return cfg, logger.New(cfg), nil
	}

	if !verbose {
		cfg.LogLevel = "warn"
	}
	if cfg.LogFormat == "json" {
		cfg.LogFormat = "console"
	}
	return cfg, logger.NewWithWriter(cfg, os.Stderr), nil
}

// bootstrap wires config, stores, record source, snapshot and pipeline.
// The snapshot is not loaded yet.
func bootstrap(ctx context.Context, server bool) (*runtime, error) {
	cfg, log, err := loadConfig(server)
	if err != nil {
		return nil, err
	}

	dash, err := dashconfig.LoadOrDefault(cfg.DashboardConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load dashboard config: %w", err)
	}
	stamp, err := dashconfig.NewStamp(dash)
	if err != nil {
		return nil, fmt.Errorf("stamp dashboard config: %w", err)
	}

	rt := &runtime{
		cfg:      cfg,
		log:      log,
		dash:     dash,
		stamp:    stamp,
		pipeline: selection.NewPipeline(dash, log.WithComponent("pipeline")),
	}

	deps := source.Deps{}
	if cfg.ResolvedSource() == config.SourcePostgres {
		rt.db, err = database.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		deps.DB = rt.db.Pool
	}

	rt.redis, err = redis.New(ctx, cfg)
	if err != nil {
		// the cache is optional
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
		rt.redis = redis.Disabled()
	}
	deps.Redis = rt.redis

	rt.source, err = source.Open(cfg, deps, log.WithComponent("source"))
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open record source: %w", err)
	}
	rt.snapshot = source.NewSnapshot(rt.source, log.WithComponent("snapshot"))

	log.WithFields(map[string]interface{}{
		"dashboard_id": stamp.DashboardID,
		"config_hash":  stamp.ConfigHash,
		"source":       rt.source.Name(),
	}).Info("Runtime initialized")

	return rt, nil
}

// load bootstraps and loads the snapshot once
func load(ctx context.Context) (*runtime, error) {
	rt, err := bootstrap(ctx, false)
	if err != nil {
		return nil, err
	}
	if _, err := rt.snapshot.Load(ctx); err != nil {
		rt.Close()
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return rt, nil
}

// Close releases database and redis connections
func (rt *runtime) Close() {
	if rt.db != nil {
		rt.db.Close()
	}
	if rt.redis != nil {
		_ = rt.redis.Close()
	}
}
