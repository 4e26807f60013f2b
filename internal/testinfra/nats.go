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

// DefaultNATSImage is the NATS server image used by integration tests.
const DefaultNATSImage = "nats:2.10-alpine"

// NATSContainer is a running NATS server.
type NATSContainer struct {
	testcontainers.Container

	// URL is a nats:// URL for clients.
	URL string
}

// NewNATSContainer starts a NATS server.
func NewNATSContainer(ctx context.Context) (*NATSContainer, error) {
	container, addr, err := startService(ctx, service{
		image:   DefaultNATSImage,
		port:    "4222/tcp",
		waitLog: "Server is ready",
	})
	if err != nil {
		return nil, err
	}
	return &NATSContainer{Container: container, URL: "nats://" + addr}, nil
}
