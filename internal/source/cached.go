package source

import (
	"context"
	"time"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/pkg/logger"
	"github.com/wonny/c360/pkg/redis"
)

// CachedSource is a read-through Redis cache of another source's snapshot.
// Cache failures are logged and fall through to the origin.
type CachedSource struct {
	origin contracts.RecordSource
	cache  *redis.Cache
	ttl    time.Duration
	logger *logger.Logger
}

// NewCachedSource wraps origin with a cache; ttl <= 0 uses redis.TTLMedium
func NewCachedSource(origin contracts.RecordSource, cache *redis.Cache, ttl time.Duration, log *logger.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = redis.TTLMedium
	}
	return &CachedSource{origin: origin, cache: cache, ttl: ttl, logger: log}
}

// Name implements contracts.RecordSource
func (s *CachedSource) Name() string {
	return s.origin.Name()
}

func (s *CachedSource) key() string {
	return redis.SnapshotKey(s.origin.Name())
}

// Load implements contracts.RecordSource
func (s *CachedSource) Load(ctx context.Context) ([]contracts.Customer, error) {
	var cached []contracts.Customer
	found, err := s.cache.Get(ctx, s.key(), &cached)
	if err != nil {
		s.logger.WithError(err).WithField("source", s.Name()).Warn("Snapshot cache read failed")
	}
	if found {
		s.logger.WithFields(map[string]interface{}{
			"source": s.Name(),
			"loaded": len(cached),
		}).Debug("Snapshot served from cache")
		return cached, nil
	}

	customers, err := s.origin.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, s.key(), customers, s.ttl); err != nil {
		s.logger.WithError(err).WithField("source", s.Name()).Warn("Snapshot cache write failed")
	}
	return customers, nil
}

// Invalidate drops the cached snapshot so the next Load hits the origin
func (s *CachedSource) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, s.key())
}
