package cache

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eurolens_cache_hits_total",
		Help: "Number of response cache hits",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eurolens_cache_misses_total",
		Help: "Number of response cache misses",
	})
)

// instrumentedCache wraps a Store and counts hits and misses on every Get
type instrumentedCache struct {
	inner Store
}

// NewInstrumented wraps a cache with prometheus hit/miss instrumentation
func NewInstrumented(inner Store) Store {
	return &instrumentedCache{inner: inner}
}

func (c *instrumentedCache) Get(key string) (interface{}, bool) {
	data, ok := c.inner.Get(key)
	if ok {
		cacheHits.Inc()
	} else {
		cacheMisses.Inc()
	}
	return data, ok
}

func (c *instrumentedCache) Set(key string, data interface{}) { c.inner.Set(key, data) }

func (c *instrumentedCache) SetTTL(key string, data interface{}, ttl time.Duration) {
	c.inner.SetTTL(key, data, ttl)
}

func (c *instrumentedCache) Has(key string) bool { return c.inner.Has(key) }
func (c *instrumentedCache) Delete(key string)   { c.inner.Delete(key) }
func (c *instrumentedCache) Clear()              { c.inner.Clear() }
func (c *instrumentedCache) Len() int            { return c.inner.Len() }
