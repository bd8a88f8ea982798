// Package cache stores generated catalogs between runs.
//
// A catalog scan instantiates every registered node type, which is the slow
// part of the catalog command on a large host. The generator stores the
// encoded catalog under [CatalogKey], built from the host version, a
// fingerprint of the type definitions, and the candidate type names, so any
// change to the registered types produces a miss.
//
// [FileCache] is what the CLI uses; [NullCache] backs --no-cache and hosts
// that cannot fingerprint their types.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys.
type Cache interface {
	// Get returns the cached data and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// NullCache misses on every Get and drops every Set.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)         { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
