package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/noisepop/internal/model"
)

// Cache stores fetched dataset bodies by key
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from the dataset URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "noisepop:v1:" + hex.EncodeToString(hash[:])
}

// New builds the cache described by cfg. Disabled caching yields nil. With a
// Dir, memory fronts a disk store that outlives the process; an empty Dir
// keeps entries in memory only.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir == "" {
		return NewMemoryCache(cfg.TTL, 10*time.Minute)
	}
	return NewLayeredCache(cfg.TTL, cfg.Dir, cfg.TTL)
}
