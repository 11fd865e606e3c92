package cache

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultTTL bounds how long a response is reused when the caller does
	// not pass its own TTL
	DefaultTTL = 5 * time.Minute
	// DefaultMaxSize caps the number of live entries
	DefaultMaxSize = 100
)

// Version prefixes every key so a response-shape change invalidates old
// entries by construction.
const Version = "v3"

type entry struct {
	data     interface{}
	storedAt time.Time
	ttl      time.Duration
}

// Store is an in-process response cache with per-entry TTL and an
// oldest-stored-first eviction policy. The clock is injectable so expiry and
// eviction are testable without wall-clock sleeps. Safe for concurrent use.
type Store interface {
	Get(key string) (interface{}, bool)
	Set(key string, data interface{})
	SetTTL(key string, data interface{}, ttl time.Duration)
	Has(key string) bool
	Delete(key string)
	Clear()
	Len() int
}

type memoryCache struct {
	mu         sync.Mutex
	entries    map[string]entry
	defaultTTL time.Duration
	maxSize    int
	now        func() time.Time
}

// New creates a cache with the default TTL and capacity
func New() Store {
	return NewWithClock(DefaultTTL, DefaultMaxSize, time.Now)
}

// NewWithClock creates a cache with explicit parameters and time source
func NewWithClock(defaultTTL time.Duration, maxSize int, now func() time.Time) Store {
	return &memoryCache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		maxSize:    maxSize,
		now:        now,
	}
}

// Get returns the cached value when present and fresh. A stale entry is
// evicted and reported as absent.
func (c *memoryCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if c.now().Sub(e.storedAt) > e.ttl {
		delete(c.entries, key)
		return nil, false
	}

	return e.data, true
}

// Set stores a value with the default TTL
func (c *memoryCache) Set(key string, data interface{}) {
	c.SetTTL(key, data, c.defaultTTL)
}

// SetTTL stores a value with an explicit TTL, then removes expired entries
// and evicts the oldest-stored ones past capacity.
func (c *memoryCache) SetTTL(key string, data interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		data:     data,
		storedAt: c.now(),
		ttl:      ttl,
	}

	c.cleanup()
}

// Has mirrors Get's freshness check without returning the value
func (c *memoryCache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

func (c *memoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *memoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

func (c *memoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cleanup runs under the lock: drop expired entries first, then trim the
// oldest-stored entries until at or under capacity.
func (c *memoryCache) cleanup() {
	now := c.now()

	for key, e := range c.entries {
		if now.Sub(e.storedAt) > e.ttl {
			delete(c.entries, key)
		}
	}

	if len(c.entries) <= c.maxSize {
		return
	}

	type keyed struct {
		key      string
		storedAt time.Time
	}
	all := make([]keyed, 0, len(c.entries))
	for key, e := range c.entries {
		all = append(all, keyed{key, e.storedAt})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].storedAt.Before(all[j].storedAt)
	})

	for _, k := range all[:len(all)-c.maxSize] {
		delete(c.entries, k.key)
	}
}

// Key builds a versioned cache key from semantic parts. Callers are
// responsible for making the parts collision-free.
func Key(parts ...interface{}) string {
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, Version)
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			segments = append(segments, v)
		case int:
			segments = append(segments, strconv.Itoa(v))
		default:
			segments = append(segments, "?")
		}
	}
	return strings.Join(segments, ":")
}
