package memory

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RateLimiter = (*RateLimiter)(nil)

// idleLimiterTTL is how long an unused client limiter is kept
const idleLimiterTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a token bucket per client, local to this process.
// perMinute requests refill evenly over a minute with a burst of perMinute.
type RateLimiter struct {
	mu        sync.Mutex
	perMinute int
	clients   map[string]*clientLimiter
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter allows perMinute requests per client; zero or less disables limiting.
func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		perMinute: perMinute,
		clients:   make(map[string]*clientLimiter),
		now:       time.Now,
	}
}

// Allow reports whether the client may make another request now
func (l *RateLimiter) Allow(_ context.Context, clientID string) (bool, error) {
	if l.perMinute <= 0 {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	c, ok := l.clients[clientID]
	if !ok {
		c = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.perMinute),
		}
		l.clients[clientID] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1), nil
}

// sweep drops limiters that have been idle long enough to be full again
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < idleLimiterTTL {
		return
	}
	l.lastSweep = now
	for id, c := range l.clients {
		if now.Sub(c.lastSeen) > idleLimiterTTL {
			delete(l.clients, id)
		}
	}
}
