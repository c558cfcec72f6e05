// Package cache stores mesh artifacts keyed by geometry content.
//
// Meshing the same geometry twice is pure waste: the builder is deterministic,
// so the .msh bytes produced by Gmsh are fully determined by the geometry
// script and the Gmsh version. The cache exploits that by keying artifacts on
// a hash of both, letting repeated runs of an unchanged stack skip the Gmsh
// invocation entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache stores and retrieves mesh artifacts by key.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (zero means no expiry).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKey derives the cache key for a mesh artifact from the geometry
// script text and the engine version that would produce it.
func ArtifactKey(script, engineVersion string) string {
	hash := sha256.Sum256([]byte(engineVersion + "\x00" + script))
	return fmt.Sprintf("msh:%s", hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
