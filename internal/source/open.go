package source

import (
	"errors"
	"fmt"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/pkg/config"
	"github.com/wonny/c360/pkg/database"
	"github.com/wonny/c360/pkg/httputil"
	"github.com/wonny/c360/pkg/logger"
	"github.com/wonny/c360/pkg/redis"
)

// ErrNoDatabase is returned by Open for the postgres source without a pool
var ErrNoDatabase = errors.New("postgres source requires a database connection")

// Deps are the optional connections a source may use
type Deps struct {
	DB    database.Querier // required for postgres
	Redis *redis.Client    // enables CachedSource when enabled
	HTTP  *httputil.Client // remote datasets; created on demand
}

// Open builds the record source selected by config.
// ⭐ SSOT: DATASET_SOURCE → RecordSource 선택은 여기서만
func Open(cfg *config.Config, deps Deps, log *logger.Logger) (contracts.RecordSource, error) {
	var src contracts.RecordSource

	kind := cfg.ResolvedSource()
	switch kind {
	case config.SourcePostgres:
		if deps.DB == nil {
			return nil, ErrNoDatabase
		}
		src = NewPostgresSource(deps.DB, log)
	case config.SourceCSV, config.SourceXLSX:
		src = openFile(kind, cfg.Dataset, deps, log)
	default:
		return nil, fmt.Errorf("unknown dataset source %q", kind)
	}

	if deps.Redis.Enabled() {
		cache := redis.NewCache(deps.Redis, "c360")
		src = NewCachedSource(src, cache, cfg.Redis.CacheTTL, log)
	}

	log.WithFields(map[string]interface{}{
		"source": src.Name(),
		"cached": deps.Redis.Enabled(),
	}).Info("Record source opened")

	return src, nil
}

func openFile(kind string, ds config.DatasetConfig, deps Deps, log *logger.Logger) contracts.RecordSource {
	if IsRemote(ds.Path) {
		client := deps.HTTP
		if client == nil {
			client = httputil.New(log, 0)
		}
		return NewHTTPSource(ds.Path, ds.Sheet, client, log)
	}

	if kind == config.SourceXLSX {
		return NewXLSXSource(ds.Path, ds.Sheet, log)
	}
	return NewCSVSource(ds.Path, log)
}
