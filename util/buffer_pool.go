package util

import (
	"sync"
	"sync/atomic"
)

// BytePool provides pooling for picture and bitmap buffers, keyed by length.
type BytePool struct {
	pools map[int]*sync.Pool
	mu    sync.RWMutex

	// Metrics
	hits     atomic.Int64
	misses   atomic.Int64
	returned atomic.Int64
}

var defaultBytePool = NewBytePool()

func NewBytePool() *BytePool {
	return &BytePool{pools: make(map[int]*sync.Pool)}
}

// DefaultBytePool is shared by picture buffers and pooled bitmaps.
func DefaultBytePool() *BytePool {
	return defaultBytePool
}

// Get retrieves a zeroed buffer of exactly size bytes.
func (p *BytePool) Get(size int) []byte {
	if size <= 0 {
		return []byte{}
	}

	// Fast path: read lock
	p.mu.RLock()
	pool, exists := p.pools[size]
	p.mu.RUnlock()

	if exists {
		if buf, ok := pool.Get().(*[]byte); ok && buf != nil {
			p.hits.Add(1)
			return *buf
		}
	} else {
		// Slow path: create new pool
		p.mu.Lock()
		// Double-check after acquiring write lock
		if _, exists = p.pools[size]; !exists {
			p.pools[size] = &sync.Pool{}
		}
		p.mu.Unlock()
	}

	p.misses.Add(1)
	return make([]byte, size)
}

// Put returns a buffer to the pool after clearing it. Buffers whose length
// was never handed out by Get are dropped.
func (p *BytePool) Put(buf []byte) {
	if len(buf) == 0 {
		return
	}

	p.mu.RLock()
	pool, exists := p.pools[len(buf)]
	p.mu.RUnlock()

	if exists {
		clear(buf)
		pool.Put(&buf)
		p.returned.Add(1)
	}
}

// GetMetrics returns pool usage statistics
func (p *BytePool) GetMetrics() (hits, misses, returned int64) {
	return p.hits.Load(), p.misses.Load(), p.returned.Load()
}

// GetPoolMetrics returns metrics for the shared pool
func GetPoolMetrics() map[string]int64 {
	hits, misses, returned := defaultBytePool.GetMetrics()
	return map[string]int64{
		"hits":     hits,
		"misses":   misses,
		"returned": returned,
	}
}
