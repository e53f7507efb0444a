package cache

import "time"

// LayeredCache fronts a disk cache with a memory cache. Reads check memory
// first and promote disk hits; writes go to both tiers.
type LayeredCache struct {
	memory Cache
	disk   Cache
	ttl    time.Duration
}

// NewLayeredCache creates a layered cache over the two tiers.
func NewLayeredCache(memory, disk Cache, ttl time.Duration) *LayeredCache {
	return &LayeredCache{memory: memory, disk: disk, ttl: ttl}
}

// Get retrieves a vector, checking memory before disk.
func (c *LayeredCache) Get(key string) ([]float32, bool) {
	if vec, found := c.memory.Get(key); found {
		return vec, true
	}
	if vec, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, vec, c.ttl)
		return vec, true
	}
	return nil, false
}

// Set stores a vector in both tiers.
func (c *LayeredCache) Set(key string, vector []float32, ttl time.Duration) error {
	if err := c.memory.Set(key, vector, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, vector, ttl)
}

// Delete removes a vector from both tiers.
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear empties both tiers.
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
