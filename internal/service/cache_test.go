//go:build !integration

package service

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestTTLCache_Get(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(c *TTLCache[string, int], clock *fakeClock)
		key           string
		expectedValue int
		expectedFound bool
	}{
		{
			name: "returns value when present",
			setup: func(c *TTLCache[string, int], _ *fakeClock) {
				c.Set("a", 1)
			},
			key:           "a",
			expectedValue: 1,
			expectedFound: true,
		},
		{
			name:          "misses unknown key",
			setup:         func(*TTLCache[string, int], *fakeClock) {},
			key:           "missing",
			expectedFound: false,
		},
		{
			name: "misses expired key",
			setup: func(c *TTLCache[string, int], clock *fakeClock) {
				c.Set("a", 1)
				clock.Advance(time.Minute + time.Second)
			},
			key:           "a",
			expectedFound: false,
		},
		{
			name: "set restarts the ttl",
			setup: func(c *TTLCache[string, int], clock *fakeClock) {
				c.Set("a", 1)
				clock.Advance(50 * time.Second)
				c.Set("a", 2)
				clock.Advance(50 * time.Second)
			},
			key:           "a",
			expectedValue: 2,
			expectedFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			c := NewTTLCache[string, int]("test", 10, time.Minute)
			defer c.Stop()
			c.setClock(clock.Now)

			tt.setup(c, clock)
			value, found := c.Get(tt.key)

			assert.Equal(t, tt.expectedFound, found)
			assert.Equal(t, tt.expectedValue, value)
		})
	}
}

func TestTTLCache_LRUEviction(t *testing.T) {
	c := NewTTLCache[string, int]("test", 2, time.Minute)
	defer c.Stop()

	var evicted []string
	c.OnEvict(func(k string, _ int) { evicted = append(evicted, k) })

	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a")
	c.Set("c", 3)

	_, found := c.Get("b")
	assert.False(t, found)
	_, found = c.Get("a")
	assert.True(t, found)
	assert.Equal(t, []string{"b"}, evicted)

	m := c.Metrics()
	assert.Equal(t, int64(1), m.Evictions)
	assert.Equal(t, 2, m.Size)
	assert.Equal(t, 2, m.Capacity)
}

func TestTTLCache_Cleanup(t *testing.T) {
	clock := newFakeClock()
	c := NewTTLCache[string, int]("test", 10, time.Minute)
	defer c.Stop()
	c.setClock(clock.Now)

	var evicted []string
	c.OnEvict(func(k string, _ int) { evicted = append(evicted, k) })

	c.Set("old", 1)
	clock.Advance(30 * time.Second)
	c.Set("new", 2)
	clock.Advance(31 * time.Second)

	c.cleanup()

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, []string{"old"}, evicted)
}

func TestTTLCache_InvalidateAndClear(t *testing.T) {
	c := NewTTLCache[int, string]("test", 10, time.Minute)
	defer c.Stop()

	c.Set(1, "one")
	c.Set(2, "two")
	_, _ = c.Get(1)

	c.Invalidate(1)
	_, found := c.Get(1)
	assert.False(t, found)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	m := c.Metrics()
	assert.Zero(t, m.Hits)
	assert.Zero(t, m.Misses)

	c.Stop()
	c.Stop()
}

func TestTTLCache_Concurrent(t *testing.T) {
	c := NewTTLCache[int, int]("test", 50, time.Minute)
	defer c.Stop()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				c.Set(i%100, g)
				_, _ = c.Get(i % 100)
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}

func TestNewShardedCache(t *testing.T) {
	tests := []struct {
		name       string
		numShards  int
		wantShards int
	}{
		{name: "default shards when zero", numShards: 0, wantShards: 16},
		{name: "default shards when negative", numShards: -1, wantShards: 16},
		{name: "rounds up to power of 2", numShards: 3, wantShards: 4},
		{name: "keeps power of 2", numShards: 8, wantShards: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := NewShardedCache[int]("test", 100, time.Minute, tt.numShards)
			defer sc.Stop()
			assert.Equal(t, tt.wantShards, sc.Shards())
		})
	}
}

func TestShardedCache_Operations(t *testing.T) {
	sc := NewShardedCache[int]("test", 64, time.Minute, 4)
	defer sc.Stop()

	for i := 0; i < 20; i++ {
		sc.Set("session-"+strconv.Itoa(i), i)
	}
	assert.Equal(t, 20, sc.Len())

	v, found := sc.Get("session-7")
	require.True(t, found)
	assert.Equal(t, 7, v)

	sc.Invalidate("session-7")
	_, found = sc.Get("session-7")
	assert.False(t, found)

	m := sc.Metrics()
	assert.Equal(t, int64(1), m.Hits)
	assert.Equal(t, int64(1), m.Misses)
	assert.Equal(t, 19, m.Size)
	assert.Equal(t, 64, m.Capacity)

	sc.Clear()
	assert.Equal(t, 0, sc.Len())
}
