package fitness

import (
	"hash/fnv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheSize bounds the evaluation cache. Large enough to hold a few
// generations' worth of distinct genomes without unbounded growth.
const defaultCacheSize = 8192

// ContentHash returns a stable 64-bit hash of compiled bytecode. It is the
// cache key: two genomes that compile to byte-identical bytecode (a
// preserved elite, a mutation that touched a field the compiler ignores)
// share a cache entry instead of re-simulating.
func ContentHash(bytecode []byte) uint64 {
	h := fnv.New64a()
	h.Write(bytecode)
	return h.Sum64()
}

// EvalCache caches aggregated simulation results by bytecode content hash.
// It is read-mostly and safe for concurrent use by the parallel evaluator's
// worker pool; entries are immutable once inserted and eviction is LRU so
// the cache stays bounded across a long evolutionary run while still
// surviving individual generations (elites in particular hit it every time).
type EvalCache struct {
	mu    sync.Mutex
	inner *lru.Cache[uint64, *SimulationResults]
}

// NewEvalCache creates a cache holding up to size entries. size <= 0 uses
// defaultCacheSize.
func NewEvalCache(size int) *EvalCache {
	if size <= 0 {
		size = defaultCacheSize
	}
	inner, _ := lru.New[uint64, *SimulationResults](size)
	return &EvalCache{inner: inner}
}

// Get returns the cached results for hash, if present.
func (c *EvalCache) Get(hash uint64) (*SimulationResults, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Get(hash)
}

// Put inserts or refreshes the cached results for hash.
func (c *EvalCache) Put(hash uint64, results *SimulationResults) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inner.Add(hash, results)
}

// Len reports the number of entries currently cached.
func (c *EvalCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Len()
}

// Purge empties the cache.
func (c *EvalCache) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inner.Purge()
}
