// Package cache stores solver results keyed by the coverage problem that
// produced them.
//
// # Overview
//
// Refinement rounds and repeated runs often hand the solver a coverage
// matrix it has already solved. The pipeline hashes the matrix together
// with the solver settings, looks the key up in a [Cache], and skips the
// search on a hit.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for several machines solving
//     the same layouts
//   - [NullCache]: never stores anything, used with --no-cache
//
// # Keys
//
// A [Keyer] builds keys from a matrix hash and [SolveKeyOpts]. Use
// [NewScopedKeyer] to give a deployment its own namespace.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored data and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// TTLSolve is how long solved guard sets are kept.
const TTLSolve = 30 * 24 * time.Hour

// GetJSON looks up key and decodes the stored JSON into v. A corrupt entry
// is deleted and reported as a miss.
func GetJSON(ctx context.Context, c Cache, key string, v any) (bool, error) {
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

// SetJSON encodes v as JSON and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
