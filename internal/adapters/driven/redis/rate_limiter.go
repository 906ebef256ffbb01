package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.RateLimiter = (*RateLimiter)(nil)

const rateLimitPrefix = keyPrefix + "ratelimit:"

// RateLimiter implements a fixed-window request limit shared by all instances.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter allows limit requests per client per window.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// incrScript increments the window counter and sets its expiry on first use.
var incrScript = redis.NewScript(`
	local n = redis.call("incr", KEYS[1])
	if n == 1 then
		redis.call("pexpire", KEYS[1], ARGV[1])
	end
	return n
`)

// Allow reports whether the client may make another request in the current window.
func (l *RateLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	window := l.now().UnixNano() / int64(l.window)
	key := fmt.Sprintf("%s%s:%d", rateLimitPrefix, clientID, window)

	n, err := incrScript.Run(ctx, l.client, []string{key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", clientID, err)
	}
	return n <= int64(l.limit), nil
}
