package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	appcatalog "github.com/cosechaencope/backend/internal/application/catalog"
	"github.com/cosechaencope/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryItemCache implements ItemCache using in-process storage.
// Used when Redis is disabled; single-instance deployments only.
type InMemoryItemCache struct {
	entries sync.Map // map[uuid.UUID]*itemEntry
	ttl     time.Duration
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

type itemEntry struct {
	item      *catalog.Item
	expiresAt time.Time
}

func (e *itemEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// NewInMemoryItemCache creates an in-memory item cache with the given TTL.
func NewInMemoryItemCache(ttl time.Duration) *InMemoryItemCache {
	c := &InMemoryItemCache{
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	go c.cleanupExpired()
	return c
}

// Get retrieves an item from cache
func (c *InMemoryItemCache) Get(_ context.Context, id uuid.UUID) (*catalog.Item, bool) {
	if value, ok := c.entries.Load(id); ok {
		entry := value.(*itemEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			cp := *entry.item
			return &cp, true
		}
		c.entries.Delete(id)
	}

	atomic.AddInt64(&c.misses, 1)
	return nil, false
}

// Set stores an item in cache
func (c *InMemoryItemCache) Set(_ context.Context, item *catalog.Item) {
	if item == nil {
		return
	}
	cp := *item
	c.entries.Store(item.ID, &itemEntry{
		item:      &cp,
		expiresAt: time.Now().Add(c.ttl),
	})
}

// Invalidate removes an item from cache
func (c *InMemoryItemCache) Invalidate(_ context.Context, id uuid.UUID) {
	c.entries.Delete(id)
}

// Stats returns hit and miss counters
func (c *InMemoryItemCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Close stops the cleanup goroutine
func (c *InMemoryItemCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

func (c *InMemoryItemCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*itemEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}

// Ensure InMemoryItemCache implements ItemCache
var _ appcatalog.ItemCache = (*InMemoryItemCache)(nil)
