// Package cache stores extracted document text so repeat runs skip PDF and
// HTML conversion.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for caching document text
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, text string, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// DocumentKey generates a cache key for a document's extracted text. The
// modification time is part of the key so edited files never serve stale
// text.
func DocumentKey(path string, modTime time.Time) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", path, modTime.UnixNano())))
	return "fieldsift:v1:" + hex.EncodeToString(hash[:])
}
