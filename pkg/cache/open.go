package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Options selects and configures a cache backend.
type Options struct {
	Backend    string `toml:"backend" json:"backend"`
	Dir        string `toml:"dir" json:"dir,omitempty"`
	URL        string `toml:"url" json:"url,omitempty"`
	Database   string `toml:"database" json:"database,omitempty"`
	Collection string `toml:"collection" json:"collection,omitempty"`
	Prefix     string `toml:"prefix" json:"prefix,omitempty"`
}

// DefaultDir returns ~/.cache/dgraph, or the dgraph directory below
// $XDG_CACHE_HOME when that is set.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "dgraph"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "dgraph"), nil
}

// Open creates the backend named by opts.Backend. An empty backend means
// [BackendFile] in [DefaultDir] unless opts.Dir is set.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendFile:
		dir := opts.Dir
		if dir == "" {
			var err error
			if dir, err = DefaultDir(); err != nil {
				return nil, fmt.Errorf("cache dir: %w", err)
			}
		}
		return NewFileCache(dir)
	case BackendRedis:
		return NewRedisCache(ctx, opts.URL, opts.Prefix)
	case BackendMongo:
		if opts.Database == "" {
			return nil, fmt.Errorf("mongo cache: database is required")
		}
		return NewMongoCache(ctx, opts.URL, opts.Database, opts.Collection)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}

// BackendName returns the backend name of c for metrics and logs.
func BackendName(c Cache) string {
	switch c.(type) {
	case NullCache, *NullCache:
		return BackendNone
	case *FileCache:
		return BackendFile
	case *RedisCache:
		return BackendRedis
	case *MongoCache:
		return BackendMongo
	default:
		return "custom"
	}
}
