package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskCache persists extracted document text across runs
type DiskCache struct {
	dir string
	ttl time.Duration
}

// NewDiskCache creates a new disk cache
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	return &DiskCache{
		dir: dir,
		ttl: ttl,
	}
}

type textEntry struct {
	Text      string    `json:"text"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves document text from the disk cache
func (c *DiskCache) Get(key string) (string, bool) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	var entry textEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", false
	}

	// Check expiration
	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return "", false
	}

	return entry.Text, true
}

// Set stores document text in the disk cache
func (c *DiskCache) Set(key string, text string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	entry := textEntry{
		Text:      text,
		ExpiresAt: time.Now().Add(ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	path := c.path(key)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// Delete removes an entry from the disk cache
func (c *DiskCache) Delete(key string) error {
	path := c.path(key)
	return os.Remove(path)
}

// Clear removes all cached files
func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

// path generates the file path for a cache key
func (c *DiskCache) path(key string) string {
	return filepath.Join(c.dir, key+".cache")
}
