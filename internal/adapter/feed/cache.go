package feed

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/hazard-decision-service/internal/domain"
	"github.com/couchcryptid/hazard-decision-service/internal/observability"
)

// CachedFeed wraps a Feed with an in-memory LRU cache whose entries expire
// after a fixed TTL.
type CachedFeed struct {
	inner   domain.Feed
	points  *lruCache[[]domain.Point]
	dengue  *lruCache[*domain.FeatureCollection]
	metrics *observability.Metrics
}

// NewCachedFeed creates a cache decorator around a feed.
func NewCachedFeed(inner domain.Feed, maxEntries int, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *CachedFeed {
	return &CachedFeed{
		inner:   inner,
		points:  newLRUCache[[]domain.Point](maxEntries, ttl, clock),
		dengue:  newLRUCache[*domain.FeatureCollection](1, ttl, clock),
		metrics: metrics,
	}
}

func (c *CachedFeed) Points(ctx context.Context, ds domain.Dataset) ([]domain.Point, error) {
	key := string(ds)
	if points, ok := c.points.get(key); ok {
		c.record(ds, "hit")
		return points, nil
	}
	c.record(ds, "miss")

	points, err := c.inner.Points(ctx, ds)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty results so an empty upstream response is retried next cycle.
	if len(points) > 0 {
		c.points.put(key, points)
	}
	return points, nil
}

func (c *CachedFeed) DengueClusters(ctx context.Context) (*domain.FeatureCollection, error) {
	key := string(domain.DatasetDengue)
	if fc, ok := c.dengue.get(key); ok {
		c.record(domain.DatasetDengue, "hit")
		return fc, nil
	}
	c.record(domain.DatasetDengue, "miss")

	fc, err := c.inner.DengueClusters(ctx)
	if err != nil {
		return nil, err
	}
	if fc != nil && len(fc.Features) > 0 {
		c.dengue.put(key, fc)
	}
	return fc, nil
}

func (c *CachedFeed) record(ds domain.Dataset, result string) {
	c.metrics.FeedCache.WithLabelValues(string(ds), result).Inc()
}

// lruCache is a thread-safe LRU cache with per-entry expiry.
type lruCache[V any] struct {
	maxEntries int
	ttl        time.Duration
	clock      clockwork.Clock
	mu         sync.Mutex
	entries    map[string]*entry[V]
	head       *entry[V] // most recently used
	tail       *entry[V] // least recently used
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	prev      *entry[V]
	next      *entry[V]
}

func newLRUCache[V any](maxEntries int, ttl time.Duration, clock clockwork.Clock) *lruCache[V] {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &lruCache[V]{
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      clock,
		entries:    make(map[string]*entry[V]),
	}
}

func (c *lruCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		delete(c.entries, key)
		c.remove(e)
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.clock.Now().Add(c.ttl)
	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache[V]) addToFront(e *entry[V]) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache[V]) remove(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache[V]) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
