// Package cache stores crawl graphs, layouts and rendered artifacts.
//
// # Overview
//
// Layouts are pure functions of the node set, the layout kind and the
// spacing options, so they can be memoized. The [Cache] interface is a
// byte store with TTLs; [Keyer] derives stable keys for each stage:
//
//	graph:    source + job id        -> crawl graph JSON
//	layout:   graph hash + options   -> layout JSON
//	artifact: layout hash + format   -> svg/png/dot bytes
//
// # Implementations
//
//   - [FileCache]: one file per entry under a directory, used by the CLI
//   - [RedisCache]: shared cache for the API server
//   - [NullCache]: never stores anything
//
// Use [NewScopedKeyer] to give tenants or environments separate key spaces
// on the same backend.
package cache

import (
	"context"
	"time"
)

// TTLs for each cached stage.
const (
	// TTLGraph is short because crawl jobs keep discovering pages.
	TTLGraph    = 2 * time.Minute
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
//
// Get returns hit=false with a nil error on a miss. A ttl of zero means the
// entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
