// Package cache provides pluggable byte caches for layouts and rendered
// artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: never stores anything
//
// # Keys
//
// A [Keyer] derives cache keys from content hashes and the options that
// influence the cached value. Two layouts of the same graph data with
// different layer counts or ordering strategies never share a key:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(cache.Hash(data), cache.LayoutKeyOpts{NumLayer: 4})
//
// [ScopedKeyer] prefixes every key, giving tenants separate namespaces in a
// shared backend.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind.
const (
	TTLSource   = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss as (nil, false, nil); an error means the backend could
// not be queried. A ttl of zero stores the entry without expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// SourceKey is the key for graph data fetched from a URL.
	SourceKey(url string) string
	// LayoutKey is the key for a grid computed from graph data whose
	// content hash is graphHash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	// ArtifactKey is the key for one rendered output of a grid whose
	// content hash is layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists the options that change a computed grid.
type LayoutKeyOpts struct {
	NumLayer  int    `json:"num_layer"`
	Compacted bool   `json:"compacted"`
	Ordering  string `json:"ordering"`
	Passes    int    `json:"passes,omitempty"`
}

// ArtifactKeyOpts lists the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Invert      bool    `json:"invert,omitempty"`
	MeshWidth   int     `json:"mesh_width,omitempty"`
	MeshHeight  int     `json:"mesh_height,omitempty"`
	GridLabel   string  `json:"grid_label,omitempty"`
	Highlight   string  `json:"highlight,omitempty"`
	ShowVirtual bool    `json:"show_virtual,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SourceKey returns "source:" followed by the hash of url.
func (DefaultKeyer) SourceKey(url string) string {
	return hashKey("source", url)
}

// LayoutKey returns "layout:" followed by the hash of graphHash and opts.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey returns "artifact:" followed by the hash of layoutHash and opts.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
