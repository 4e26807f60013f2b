// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/metrics"
	"github.com/tomtom215/careerpath/internal/models"
)

// DefaultMongoDatabase is used when neither the config nor the URI name one.
const DefaultMongoDatabase = "career_recommender"

// MongoSource reads historical data from the recommender's MongoDB database.
type MongoSource struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// NewMongoSource creates a client for cfg.URI. The driver connects lazily, so
// an unreachable server surfaces on the first query or Ping rather than here.
func NewMongoSource(ctx context.Context, cfg config.MongoConfig) (*MongoSource, error) {
	name, err := mongoDatabaseName(cfg)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout).
		SetAppName("careerml")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	logging.Debug().Str("database", name).Msg("MongoDB client created")
	return NewMongoSourceFromClient(client, name, timeout), nil
}

// NewMongoSourceFromClient wraps an existing client.
func NewMongoSourceFromClient(client *mongo.Client, database string, timeout time.Duration) *MongoSource {
	return &MongoSource{
		client:  client,
		db:      client.Database(database),
		timeout: timeout,
	}
}

// mongoDatabaseName resolves the database from config, then the URI path.
func mongoDatabaseName(cfg config.MongoConfig) (string, error) {
	if cfg.Database != "" {
		return cfg.Database, nil
	}
	cs, err := connstring.ParseAndValidate(cfg.URI)
	if err != nil {
		return "", fmt.Errorf("parse mongo uri: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	return DefaultMongoDatabase, nil
}

// Recommendations returns every document in the recommendations collection.
func (s *MongoSource) Recommendations(ctx context.Context) ([]models.RecommendationRecord, error) {
	out := []models.RecommendationRecord{}
	if err := s.findAll(ctx, RecommendationsCollection, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Careers returns every document in the careers collection.
func (s *MongoSource) Careers(ctx context.Context) ([]models.Career, error) {
	out := []models.Career{}
	if err := s.findAll(ctx, CareersCollection, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoSource) findAll(ctx context.Context, collection string, results interface{}) (err error) {
	start := time.Now()
	defer func() { metrics.RecordSourceQuery("mongo", collection, time.Since(start), err) }()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cur, err := s.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("find %s: %w", collection, err)
	}
	if err := cur.All(ctx, results); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	logging.Ctx(ctx).Debug().Str("collection", collection).Dur("duration", time.Since(start)).Msg("Loaded collection")
	return nil
}

// Ping checks connectivity against the primary.
func (s *MongoSource) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoSource) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Source = (*MongoSource)(nil)
