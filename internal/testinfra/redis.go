// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

//go:build integration

package testinfra

import (
	"context"

	"github.com/testcontainers/testcontainers-go"
)

// DefaultRedisImage is the Redis image used by integration tests.
const DefaultRedisImage = "redis:7-alpine"

// RedisContainer is a running Redis.
type RedisContainer struct {
	testcontainers.Container

	// URL is a redis:// URL for database 0.
	URL string
}

// NewRedisContainer starts Redis.
func NewRedisContainer(ctx context.Context) (*RedisContainer, error) {
	container, addr, err := startService(ctx, service{
		image:   DefaultRedisImage,
		port:    "6379/tcp",
		waitLog: "Ready to accept connections",
	})
	if err != nil {
		return nil, err
	}
	return &RedisContainer{Container: container, URL: "redis://" + addr + "/0"}, nil
}
