package redis

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter implements sliding window rate limiting shared across API
// instances through Redis.
// ⭐ SSOT: 분산 레이트 리밋은 여기서만
type RateLimiter struct {
	client *Client
	prefix string
	limit  int
	window time.Duration
}

// seq keeps sorted-set members unique within one process
var seq atomic.Uint64

// slidingWindow is evaluated atomically on the server
var slidingWindow = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])
	local member = ARGV[5]

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local count = redis.call('ZCARD', key)
	if count < limit then
		redis.call('ZADD', key, now, member)
		redis.call('PEXPIRE', key, window_ms)
		return {1, limit - count - 1}
	end
	return {0, 0}
`)

// NewRateLimiter allows limit requests per window for each key
func NewRateLimiter(client *Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Enabled reports whether requests are checked against Redis
func (r *RateLimiter) Enabled() bool {
	return r.client.Enabled() && r.limit > 0
}

// Allow records one request for key and reports (allowed, remaining)
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	if !r.Enabled() {
		return true, r.limit, nil
	}

	fullKey := fmt.Sprintf("%s:ratelimit:%s", r.prefix, key)
	now := time.Now()
	nowMs := now.UnixMilli()
	windowStart := nowMs - r.window.Milliseconds()
	member := fmt.Sprintf("%d-%d", now.UnixNano(), seq.Add(1))

	result, err := slidingWindow.Run(ctx, r.client.Redis(), []string{fullKey},
		nowMs,
		windowStart,
		r.limit,
		r.window.Milliseconds(),
		member,
	).Int64Slice()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit script failed: %w", err)
	}
	if len(result) != 2 {
		return false, 0, fmt.Errorf("rate limit script returned %d values", len(result))
	}

	return result[0] == 1, int(result[1]), nil
}
