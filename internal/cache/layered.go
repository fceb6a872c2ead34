package cache

import "time"

// LayeredCache fronts the disk cache with an in-memory layer so a document
// converted once in a run is never re-read from disk.
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

// Get checks memory first, then disk, promoting disk hits to memory
func (c *LayeredCache) Get(key string) (string, bool) {
	if text, found := c.memory.Get(key); found {
		return text, true
	}

	if text, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, text, 0) // Use default TTL
		return text, true
	}

	return "", false
}

// Set stores document text in both layers
func (c *LayeredCache) Set(key string, text string, ttl time.Duration) error {
	if err := c.memory.Set(key, text, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, text, ttl)
}

// Delete removes an entry from both layers
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear removes all entries from both layers
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
