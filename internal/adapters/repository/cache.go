package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stiyes/fpvforge/internal/domain/model"
	"github.com/stiyes/fpvforge/pkg/logger"
	"github.com/stiyes/fpvforge/pkg/metrics"
)

const defaultCacheTTL = time.Hour

// CatalogCache holds a time-bounded snapshot of the catalog. When a reload
// fails and a previous snapshot exists, the stale snapshot is served and
// the reload is retried on the next read.
type CatalogCache struct {
	store ComponentStore
	ttl   time.Duration
	now   func() time.Time
	log   logger.Logger

	mu       sync.Mutex
	snapshot []model.Component
	loadedAt time.Time
	loaded   bool
}

// NewCatalogCache creates a cache in front of store.
func NewCatalogCache(store ComponentStore, opts ...CacheOption) *CatalogCache {
	c := &CatalogCache{
		store: store,
		ttl:   defaultCacheTTL,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCacheLogger logs stale-snapshot fallbacks.
func WithCacheLogger(l logger.Logger) CacheOption {
	return func(c *CatalogCache) {
		c.log = l
	}
}

// Snapshot returns the current catalog. Callers must not modify the
// returned slice.
func (c *CatalogCache) Snapshot(ctx context.Context) ([]model.Component, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && c.now().Sub(c.loadedAt) < c.ttl {
		metrics.RecordCacheHit()
		return c.snapshot, nil
	}
	metrics.RecordCacheMiss()

	start := c.now()
	list, err := c.store.List(ctx)
	metrics.RecordCacheRefreshLatency(float64(c.now().Sub(start).Microseconds()) / 1000)
	if err != nil {
		metrics.RecordCacheRefreshError()
		if c.snapshot != nil {
			if c.log != nil {
				c.log.Warn(ctx, "catalog reload failed, serving stale snapshot",
					logger.Error(err),
					logger.Int("components", len(c.snapshot)),
				)
			}
			return c.snapshot, nil
		}
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	c.snapshot = list
	c.loadedAt = c.now()
	c.loaded = true
	metrics.UpdateCatalogSize(len(list))
	return list, nil
}

// Invalidate forces the next Snapshot to reload. The current snapshot is
// kept as the stale fallback.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
}

// LoadedAt returns when the current snapshot was loaded.
func (c *CatalogCache) LoadedAt() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadedAt, c.loaded
}
