// Package cache stores fetched listing pages so repeated requests against
// the same sources do not re-hit the listing sites. Layered: memory first,
// disk behind it.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for the page cache.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// PageKey generates a cache key for a listing page URL.
func PageKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "bukkengen:v1:" + hex.EncodeToString(hash[:])
}
