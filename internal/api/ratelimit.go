package api

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/c360/pkg/config"
	"github.com/wonny/c360/pkg/redis"
)

// Limiter decides whether one more request from key may proceed
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// NewLimiter picks the request limiter for cfg.
// Returns nil when rate limiting is off. With Redis available the window is
// shared across instances; otherwise each client gets a local token bucket.
func NewLimiter(cfg config.APIConfig, client *redis.Client) Limiter {
	if cfg.RateLimit <= 0 {
		return nil
	}

	burst := cfg.RateBurst
	if burst <= 0 {
		burst = int(math.Ceil(cfg.RateLimit))
	}

	if client.Enabled() {
		limit := int(math.Ceil(cfg.RateLimit))
		if burst > limit {
			limit = burst
		}
		return &redisLimiter{rl: redis.NewRateLimiter(client, "c360", limit, time.Second)}
	}

	return newBucketLimiter(rate.Limit(cfg.RateLimit), burst, time.Now)
}

// minBucketIdle is the shortest time a bucket is kept after its last request
const minBucketIdle = 3 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// bucketLimiter keeps one token bucket per client in process memory.
// Buckets idle long enough to have refilled are swept on access.
type bucketLimiter struct {
	limit rate.Limit
	burst int
	idle  time.Duration
	now   func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newBucketLimiter(limit rate.Limit, burst int, now func() time.Time) *bucketLimiter {
	// a bucket dropped before it refilled would hand out a fresh burst
	idle := time.Duration(float64(burst) / float64(limit) * float64(time.Second))
	if idle < minBucketIdle {
		idle = minBucketIdle
	}

	return &bucketLimiter{
		limit:     limit,
		burst:     burst,
		idle:      idle,
		now:       now,
		buckets:   make(map[string]*bucket),
		lastSweep: now(),
	}
}

func (l *bucketLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	return b.limiter.AllowN(now, 1), nil
}

// sweep drops buckets not used within the idle window. Caller holds mu.
func (l *bucketLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.idle {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

func (l *bucketLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// redisLimiter adapts the sliding window limiter in pkg/redis
type redisLimiter struct {
	rl *redis.RateLimiter
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	allowed, _, err := l.rl.Allow(ctx, key)
	return allowed, err
}
