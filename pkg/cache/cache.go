// Package cache provides pluggable result caching for planning runs.
//
// Three backends implement the same [Cache] interface: a file cache for
// CLI usage, a Redis cache for the API server, and a null cache that
// disables caching entirely. Keys are produced by a [Keyer] so callers
// never concatenate key strings by hand.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Default TTLs per result kind. Plans are pure functions of their spec
// and could live forever; the TTL bounds disk/memory growth. Analyses
// come from a model that changes underneath us, so they expire sooner.
const (
	PlanTTL     = 24 * time.Hour
	AnalysisTTL = time.Hour
)

// Cache is the minimal byte-oriented cache contract. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get returns the cached data and whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates namespaced cache keys for the planning domain.
type Keyer interface {
	// PlanKey keys a full plan result by the spec content hash.
	PlanKey(specHash string) string

	// AnalysisKey keys a model-generated analysis by spec hash and model.
	AnalysisKey(specHash, model string) string
}

// DefaultKeyer is the standard key scheme: "<kind>:<hash>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlanKey generates a key for a cached plan result.
func (k *DefaultKeyer) PlanKey(specHash string) string {
	return "plan:" + specHash
}

// AnalysisKey generates a key for a cached analysis. The model name is
// hashed into the key so switching models never serves stale text.
func (k *DefaultKeyer) AnalysisKey(specHash, model string) string {
	return hashKey("analysis", specHash, model)
}

// hashKey builds "prefix:sha256(parts)" from arbitrary components.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash computes the SHA-256 hex digest of data. Used to derive the spec
// content hash that anchors every cache key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
