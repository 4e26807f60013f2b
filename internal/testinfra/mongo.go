// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

//go:build integration

package testinfra

import (
	"context"
	"fmt"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
)

const (
	// DefaultMongoImage is the MongoDB image used by integration tests.
	DefaultMongoImage = "mongo:7"

	// DefaultMongoPort is the MongoDB wire protocol port.
	DefaultMongoPort nat.Port = "27017/tcp"
)

// MongoContainer is a running MongoDB.
type MongoContainer struct {
	testcontainers.Container

	// URI is a mongodb:// URI naming database.
	URI string
}

// NewMongoContainer starts MongoDB and returns a URI pointing at database.
func NewMongoContainer(ctx context.Context, database string) (*MongoContainer, error) {
	container, addr, err := startService(ctx, service{
		image:   DefaultMongoImage,
		port:    DefaultMongoPort,
		waitLog: "Waiting for connections",
	})
	if err != nil {
		return nil, err
	}
	return &MongoContainer{
		Container: container,
		URI:       fmt.Sprintf("mongodb://%s/%s", addr, database),
	}, nil
}
