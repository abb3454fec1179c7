// Package cache provides the caching layer for computed layouts and rendered
// artifacts.
//
// A Cache stores opaque byte values under string keys with optional TTLs.
// A Keyer derives deterministic keys from content hashes and computation
// options, so identical inputs always hit the same entry. Three Cache
// implementations ship with the package: FileCache (CLI, XDG cache dir),
// RedisCache (server deployments), and NullCache (caching disabled).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// TTLs for the different entry kinds. Snapshots change as users edit their
// projects, so they expire fastest; layouts and artifacts are pure functions
// of their inputs and keep longer.
const (
	TTLSnapshot = 1 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the minimal byte-oriented cache contract.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts are the inputs that distinguish one layout computation from
// another for the same snapshot.
type LayoutKeyOpts struct {
	SelectedClass string `json:"selected_class"`
	Geometry      any    `json:"geometry,omitempty"` // layout.Config value
}

// ArtifactKeyOpts are the inputs that distinguish one rendered artifact from
// another for the same layout.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Style  string `json:"style,omitempty"`
}

// Keyer derives cache keys. Implementations must be deterministic:
// identical inputs yield identical keys.
type Keyer interface {
	// SnapshotKey keys a stored ontology snapshot by project ID.
	SnapshotKey(project string) string

	// LayoutKey keys a computed layout by snapshot content hash and options.
	LayoutKey(snapshotHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by layout content hash and options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key derivation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// SnapshotKey generates a key for snapshot caching.
func (k *DefaultKeyer) SnapshotKey(project string) string {
	return hashKey("snapshot", project)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(snapshotHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", snapshotHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
