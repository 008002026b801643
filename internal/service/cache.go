// Package service contains the storefront's use cases: session handling,
// catalog browsing, autocomplete, checkout, orders, recommendations and
// the per-session cart registry.
package service

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/semanticshop/storefront/internal/metrics"
	"github.com/semanticshop/storefront/internal/service/cache"
)

// TTLCache is a thread-safe LRU cache whose entries expire after a fixed
// TTL. It implements cache.CacheWithMetrics.
type TTLCache[K comparable, V any] struct {
	mu        sync.Mutex
	name      string
	capacity  int
	ttl       time.Duration
	items     map[K]*cacheEntry[K, V]
	head      *cacheEntry[K, V]
	tail      *cacheEntry[K, V]
	stopCh    chan struct{}
	stopOnce  sync.Once
	now       func() time.Time
	onEvict   func(K, V)
	sizeGauge bool
	hits      int64
	misses    int64
	evictions int64
}

type cacheEntry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
	prev      *cacheEntry[K, V]
	next      *cacheEntry[K, V]
}

// NewTTLCache creates a cache holding up to capacity entries for ttl
// each. name labels the cache metrics. A background goroutine sweeps
// expired entries until Stop is called.
func NewTTLCache[K comparable, V any](name string, capacity int, ttl time.Duration) *TTLCache[K, V] {
	return newTTLCache[K, V](name, capacity, ttl, true)
}

func newTTLCache[K comparable, V any](name string, capacity int, ttl time.Duration, sizeGauge bool) *TTLCache[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	c := &TTLCache[K, V]{
		name:      name,
		capacity:  capacity,
		ttl:       ttl,
		items:     make(map[K]*cacheEntry[K, V], capacity),
		stopCh:    make(chan struct{}),
		now:       time.Now,
		sizeGauge: sizeGauge,
	}
	go c.startCleanup(cleanupInterval(ttl))
	return c
}

// OnEvict registers a callback run, outside the lock, for every entry
// dropped by capacity or expiry.
func (c *TTLCache[K, V]) OnEvict(fn func(K, V)) {
	c.mu.Lock()
	c.onEvict = fn
	c.mu.Unlock()
}

func (c *TTLCache[K, V]) setClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

func cleanupInterval(ttl time.Duration) time.Duration {
	interval := ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	if interval > time.Minute {
		interval = time.Minute
	}
	return interval
}

// Stop shuts down the cleanup goroutine. It is safe to call twice.
func (c *TTLCache[K, V]) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Metrics returns current cache performance metrics.
func (c *TTLCache[K, V]) Metrics() cache.Metrics {
	c.mu.Lock()
	size := len(c.items)
	c.mu.Unlock()

	return cache.Metrics{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      size,
		Capacity:  c.capacity,
	}
}

// Len returns the number of entries, expired ones included until swept.
func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Get returns the value for key if present and not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V

	c.mu.Lock()
	entry, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation(c.name, "get", "miss")
		return zero, false
	}

	if c.now().After(entry.expiresAt) {
		c.removeEntry(entry)
		evict := c.onEvict
		size := len(c.items)
		c.mu.Unlock()

		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation(c.name, "get", "expired")
		c.reportSize(size)
		if evict != nil {
			evict(entry.key, entry.value)
		}
		return zero, false
	}

	c.moveToFront(entry)
	value := entry.value
	c.mu.Unlock()

	atomic.AddInt64(&c.hits, 1)
	metrics.RecordCacheOperation(c.name, "get", "hit")
	return value, true
}

// Set adds or replaces key and restarts its TTL. The least recently used
// entry is evicted when the cache is full.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()

	if entry, ok := c.items[key]; ok {
		entry.value = value
		entry.expiresAt = c.now().Add(c.ttl)
		c.moveToFront(entry)
		c.mu.Unlock()
		return
	}

	entry := &cacheEntry[K, V]{
		key:       key,
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
	c.items[key] = entry
	c.addToFront(entry)

	var evicted *cacheEntry[K, V]
	if len(c.items) > c.capacity {
		evicted = c.removeTail()
		atomic.AddInt64(&c.evictions, 1)
		metrics.RecordCacheOperation(c.name, "evict", "capacity")
	}
	evict := c.onEvict
	size := len(c.items)
	c.mu.Unlock()

	metrics.RecordCacheOperation(c.name, "set", "success")
	c.reportSize(size)
	if evicted != nil && evict != nil {
		evict(evicted.key, evicted.value)
	}
}

// Invalidate removes key.
func (c *TTLCache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		c.removeEntry(entry)
		metrics.RecordCacheOperation(c.name, "invalidate", "success")
		c.reportSize(len(c.items))
	}
}

// Clear removes every entry and resets the counters.
func (c *TTLCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*cacheEntry[K, V], c.capacity)
	c.head = nil
	c.tail = nil

	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
	atomic.StoreInt64(&c.evictions, 0)

	metrics.RecordCacheOperation(c.name, "clear", "success")
	c.reportSize(0)
}

func (c *TTLCache[K, V]) reportSize(size int) {
	if c.sizeGauge {
		metrics.UpdateCacheSize(c.name, size)
	}
}

func (c *TTLCache[K, V]) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCh:
			return
		}
	}
}

// cleanup removes all expired entries.
func (c *TTLCache[K, V]) cleanup() {
	c.mu.Lock()
	current := c.now()
	var expired []*cacheEntry[K, V]
	for _, entry := range c.items {
		if current.After(entry.expiresAt) {
			c.removeEntry(entry)
			expired = append(expired, entry)
		}
	}
	evict := c.onEvict
	size := len(c.items)
	c.mu.Unlock()

	if len(expired) == 0 {
		return
	}
	c.reportSize(size)
	if evict != nil {
		for _, entry := range expired {
			evict(entry.key, entry.value)
		}
	}
}

func (c *TTLCache[K, V]) removeEntry(entry *cacheEntry[K, V]) {
	delete(c.items, entry.key)
	c.remove(entry)
}

func (c *TTLCache[K, V]) moveToFront(entry *cacheEntry[K, V]) {
	if entry == c.head {
		return
	}
	c.remove(entry)
	c.addToFront(entry)
}

func (c *TTLCache[K, V]) addToFront(entry *cacheEntry[K, V]) {
	entry.prev = nil
	entry.next = c.head
	if c.head != nil {
		c.head.prev = entry
	}
	c.head = entry
	if c.tail == nil {
		c.tail = entry
	}
}

// remove unlinks entry without touching the map.
func (c *TTLCache[K, V]) remove(entry *cacheEntry[K, V]) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
	entry.prev = nil
	entry.next = nil
}

func (c *TTLCache[K, V]) removeTail() *cacheEntry[K, V] {
	tail := c.tail
	if tail == nil {
		return nil
	}
	c.removeEntry(tail)
	return tail
}

// ShardedCache spreads string keys over several TTLCaches to reduce lock
// contention.
type ShardedCache[V any] struct {
	name      string
	shards    []*TTLCache[string, V]
	shardMask uint32
}

// NewShardedCache creates a sharded cache of the given total capacity.
// numShards is rounded up to a power of two; zero or less means 16.
func NewShardedCache[V any](name string, capacity int, ttl time.Duration, numShards int) *ShardedCache[V] {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n *= 2
	}
	numShards = n

	perShard := capacity / numShards
	if perShard < 1 {
		perShard = 1
	}

	shards := make([]*TTLCache[string, V], numShards)
	for i := range shards {
		shards[i] = newTTLCache[string, V](name, perShard, ttl, false)
	}

	return &ShardedCache[V]{
		name:      name,
		shards:    shards,
		shardMask: uint32(numShards - 1),
	}
}

func (sc *ShardedCache[V]) shard(key string) *TTLCache[string, V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return sc.shards[h.Sum32()&sc.shardMask]
}

// Shards returns the number of shards.
func (sc *ShardedCache[V]) Shards() int {
	return len(sc.shards)
}

// Get retrieves a value from the owning shard.
func (sc *ShardedCache[V]) Get(key string) (V, bool) {
	return sc.shard(key).Get(key)
}

// Set stores a value in the owning shard.
func (sc *ShardedCache[V]) Set(key string, value V) {
	sc.shard(key).Set(key, value)
	metrics.UpdateCacheSize(sc.name, sc.Len())
}

// Invalidate removes a key from the owning shard.
func (sc *ShardedCache[V]) Invalidate(key string) {
	sc.shard(key).Invalidate(key)
	metrics.UpdateCacheSize(sc.name, sc.Len())
}

// Len returns the number of entries across shards.
func (sc *ShardedCache[V]) Len() int {
	n := 0
	for _, s := range sc.shards {
		n += s.Len()
	}
	return n
}

// Clear empties every shard.
func (sc *ShardedCache[V]) Clear() {
	for _, s := range sc.shards {
		s.Clear()
	}
}

// Stop shuts down every shard.
func (sc *ShardedCache[V]) Stop() {
	for _, s := range sc.shards {
		s.Stop()
	}
}

// OnEvict registers fn on every shard.
func (sc *ShardedCache[V]) OnEvict(fn func(string, V)) {
	for _, s := range sc.shards {
		s.OnEvict(fn)
	}
}

// Metrics returns metrics aggregated over all shards.
func (sc *ShardedCache[V]) Metrics() cache.Metrics {
	var total cache.Metrics
	for _, s := range sc.shards {
		m := s.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

var (
	_ cache.CacheWithMetrics[string, int] = (*TTLCache[string, int])(nil)
	_ cache.CacheWithMetrics[string, int] = (*ShardedCache[int])(nil)
)
