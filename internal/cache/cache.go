// Package cache stores embedding vectors keyed by model identity and text,
// so repeated claims and rebuilt corpora skip upstream embedding calls.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the embedding cache contract. Vectors are immutable once
// stored; a miss is never an error.
type Cache interface {
	Get(key string) ([]float32, bool)
	Set(key string, vector []float32, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from the embedding-model identity and the text.
// The model identity is part of the key: vectors from different models must
// never collide.
func Key(modelID, text string) string {
	hash := sha256.Sum256([]byte(modelID + "\x00" + text))
	return "veridex:v1:" + hex.EncodeToString(hash[:])
}
