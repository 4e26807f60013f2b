// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package cache provides byte-valued caches with TTL support.

The recommendation layer caches each user's collaborative-filtering top-N list
keyed by model snapshot, so repeated enhance calls for the same user skip the
neighbour scan until a new snapshot is published.

# Backends

  - LRUCache: in-process, O(1) Get/Set/evict, lazy TTL expiry (default)
  - RedisCache: shared between processes via github.com/redis/go-redis/v9

Both implement Cacher. Select one with New:

	c, err := cache.New(cache.Config{Backend: cache.BackendLRU, Capacity: 10000, TTL: 10 * time.Minute})

# Keys

Key joins parts with ":" and hashes oversized parts:

	key := cache.Key("cf", snapshotID, userID)

Keys that embed the snapshot id never need explicit invalidation: a reload
publishes a new id and old entries age out.

# Thread Safety

All types are safe for concurrent use.
*/
package cache
