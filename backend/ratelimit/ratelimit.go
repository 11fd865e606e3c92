package ratelimit

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var limiterRejections = promauto.NewCounter(prometheus.CounterOpts{
	Name: "eurolens_ratelimit_rejections_total",
	Help: "Number of requests rejected by the fixed-window rate limiter",
})

// Result reports the outcome of one Allow call
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type window struct {
	start time.Time
	count int
}

// Limiter is a fixed-window counter keyed by an opaque string (the client
// address). Windows reset lazily on the first request after expiry; lapsed
// windows are pruned opportunistically so the table does not grow with every
// address ever seen. Safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int
	duration time.Duration
	now      func() time.Time
}

// New creates a limiter allowing `limit` requests per `duration` per key
func New(limit int, duration time.Duration) *Limiter {
	return NewWithClock(limit, duration, time.Now)
}

// NewWithClock creates a limiter with an injected time source
func NewWithClock(limit int, duration time.Duration, now func() time.Time) *Limiter {
	return &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		now:      now,
	}
}

// Allow records a request for the key and reports whether it is within the
// window's limit. Rejected requests carry the time until the window resets.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.duration {
		w = &window{start: now}
		l.windows[key] = w
	}

	if w.count >= l.limit {
		limiterRejections.Inc()
		return Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: w.start.Add(l.duration).Sub(now),
		}
	}

	w.count++
	return Result{
		Allowed:   true,
		Remaining: l.limit - w.count,
	}
}

// prune runs under the lock and drops windows that have lapsed
func (l *Limiter) prune(now time.Time) {
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.duration {
			delete(l.windows, key)
		}
	}
}
