package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/odds-apex/internal/metrics"
)

// CacheKey identifies one set of evaluation inputs
type CacheKey struct {
	Kind   string
	Digest string
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s", k.Kind, k.Digest)
}

// NewCacheKey hashes the JSON form of the inputs
func NewCacheKey(kind string, inputs ...interface{}) (CacheKey, error) {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, in := range inputs {
		if err := enc.Encode(in); err != nil {
			return CacheKey{}, fmt.Errorf("failed to encode cache key: %w", err)
		}
	}
	return CacheKey{Kind: kind, Digest: hex.EncodeToString(h.Sum(nil))}, nil
}

// ResultCache provides in-memory caching for evaluation results
type ResultCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewResultCache creates a new result cache
func NewResultCache(ttl time.Duration, maxSize int) *ResultCache {
	return &ResultCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached result
func (rc *ResultCache) Get(key CacheKey) (interface{}, bool) {
	result, found := rc.cache.Get(key.String())

	rc.mu.Lock()
	if found {
		rc.hitCount++
		metrics.RecordCacheHit()
	} else {
		rc.missCount++
		metrics.RecordCacheMiss()
	}
	ratio := rc.ratioLocked()
	rc.mu.Unlock()

	metrics.UpdateCacheHitRatio(ratio)
	return result, found
}

// Set stores a result in cache
func (rc *ResultCache) Set(key CacheKey, result interface{}) {
	if rc.maxSize > 0 && rc.cache.ItemCount() >= rc.maxSize {
		rc.cache.DeleteExpired()
		if rc.cache.ItemCount() >= rc.maxSize {
			return
		}
	}
	rc.cache.Set(key.String(), result, rc.ttl)
}

// Clear flushes the entire cache
func (rc *ResultCache) Clear() {
	rc.cache.Flush()

	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.hitCount = 0
	rc.missCount = 0
}

// Stats returns cache statistics
func (rc *ResultCache) Stats() (hits, misses uint64, ratio float64) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.hitCount, rc.missCount, rc.ratioLocked()
}

func (rc *ResultCache) ratioLocked() float64 {
	total := rc.hitCount + rc.missCount
	if total == 0 {
		return 0
	}
	return float64(rc.hitCount) / float64(total)
}

// ItemCount returns the number of items in cache
func (rc *ResultCache) ItemCount() int {
	return rc.cache.ItemCount()
}
