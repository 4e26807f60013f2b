// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultCapacity is the LRU capacity used when none is configured.
	DefaultCapacity = 10000

	// DefaultTTL is the entry lifetime used when none is configured.
	DefaultTTL = 5 * time.Minute
)

// Cacher is a byte-valued cache. Values are opaque to the cache; callers
// encode and decode them.
//
// Both the in-process LRUCache and the shared RedisCache implement it, so the
// backend is a configuration choice:
//
//	var c cache.Cacher = cache.NewLRUCache(10000, 5*time.Minute)
//	c.Set(ctx, key, payload)
//	if b, ok := c.Get(ctx, key); ok {
//	    // decode b
//	}
type Cacher interface {
	// Get returns the value and true if present and not expired.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value with the cache's default TTL.
	Set(ctx context.Context, key string, value []byte)

	// Delete removes a value.
	Delete(ctx context.Context, key string)

	// Stats returns cache statistics.
	Stats() Stats
}

// Stats tracks cache effectiveness.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Keys      int64 `json:"keys"`
}

// HitRate returns the hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Backend names a cache implementation.
type Backend string

const (
	// BackendLRU is the in-process LRU cache (default).
	BackendLRU Backend = "lru"

	// BackendRedis is a shared Redis cache.
	BackendRedis Backend = "redis"
)

// Config configures a cache.
type Config struct {
	Backend  Backend
	Capacity int
	TTL      time.Duration

	// RedisURL is a redis:// URL, required for BackendRedis.
	RedisURL string

	// KeyPrefix namespaces Redis keys.
	KeyPrefix string
}

// New builds the cache selected by cfg.Backend.
func New(cfg Config) (Cacher, error) {
	switch cfg.Backend {
	case BackendRedis:
		return NewRedisCache(cfg)
	case BackendLRU, "":
		return NewLRUCache(cfg.Capacity, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Key joins parts into a cache key. Parts longer than 64 bytes are replaced
// by their SHA-256 digest to keep keys bounded.
func Key(parts ...string) string {
	out := make([]string, len(parts))
	for i, p := range parts {
		if len(p) > 64 {
			sum := sha256.Sum256([]byte(p))
			p = hex.EncodeToString(sum[:16])
		}
		out[i] = p
	}
	return strings.Join(out, ":")
}

// Verify interface implementations at compile time
var (
	_ Cacher = (*LRUCache)(nil)
	_ Cacher = (*RedisCache)(nil)
)
