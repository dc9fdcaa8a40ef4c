package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores artifact content between resolutions. The engine queries
// the artifact store once per artifact per run; the cache keeps repeat
// runs in the same process from re-reading unchanged trees.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ContentKey generates a cache key from an artifact identifier
func ContentKey(artifact string) string {
	hash := sha256.Sum256([]byte(artifact))
	return "claimcheck:v1:" + hex.EncodeToString(hash[:])
}
