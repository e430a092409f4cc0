package cache

import "github.com/mikey/phish-detector/internal/core"

// Store is a CacheRepository that owns background resources
type Store interface {
	core.CacheRepository

	// Stop releases the store's goroutines and connections
	Stop()
}

var (
	_ Store = (*MemoryCache)(nil)
	_ Store = (*SQLiteCache)(nil)
	_ Store = (*MySQLCache)(nil)
	_ Store = (*RedisCache)(nil)
)
