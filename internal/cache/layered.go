package cache

import "time"

// LayeredCache fronts the disk cache with a memory layer. Disk hits are
// promoted so a run that touches an artifact twice pays one disk read.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache creates a new layered cache
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// Get checks memory first, then disk
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}

	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0)
		return val, true
	}

	return nil, false
}

// Set stores in both layers
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

// Delete removes the entry from both layers
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear removes all entries from both layers
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
