// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

//go:build integration

// Package testinfra starts MongoDB, Redis and NATS containers with
// testcontainers-go for integration tests.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./...
//
// Typical use:
//
//	func TestMongoSource(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//
//	    mongo, err := testinfra.NewMongoContainer(ctx, "career_recommender")
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, mongo.Container)
//
//	    src, err := database.NewMongoSource(ctx, config.MongoConfig{URI: mongo.URI})
//	    ...
//	}
package testinfra
