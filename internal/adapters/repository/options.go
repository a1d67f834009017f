package repository

import "time"

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithBusyTimeout sets how long SQLite waits on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(s *SQLiteStore) {
		if d > 0 {
			s.busyTimeout = d
		}
	}
}

// CacheOption applies a configuration option to the CatalogCache.
type CacheOption func(*CatalogCache)

// WithTTL sets how long a catalog snapshot stays fresh.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *CatalogCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheClock overrides the cache time source.
func WithCacheClock(now func() time.Time) CacheOption {
	return func(c *CatalogCache) {
		if now != nil {
			c.now = now
		}
	}
}
