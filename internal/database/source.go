// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package database

import (
	"context"
	"fmt"
	"io"

	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/models"
)

// Collection names shared by every backend.
const (
	RecommendationsCollection = "recommendations"
	CareersCollection         = "careers"
)

// Source provides the historical data models are trained on.
type Source interface {
	// Recommendations returns every historical recommendation document.
	Recommendations(ctx context.Context) ([]models.RecommendationRecord, error)

	// Careers returns the career catalogue.
	Careers(ctx context.Context) ([]models.Career, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection.
	Close() error
}

// Open connects the configured driver and wraps it in a circuit breaker.
func Open(ctx context.Context, cfg *config.Config) (Source, error) {
	var (
		src Source
		err error
	)

	driver := cfg.Source.Driver
	switch driver {
	case "", "mongo":
		driver = "mongo"
		src, err = NewMongoSource(ctx, cfg.Mongo)
	case "duckdb":
		src, err = NewDuckDBSource(ctx, cfg.Source.DuckDBPath)
	default:
		return nil, fmt.Errorf("unknown source driver %q", cfg.Source.Driver)
	}
	if err != nil {
		return nil, err
	}

	return NewBreakerSource(src, driver, cfg.Breaker), nil
}

// closeWithLog closes a resource and logs any error.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}
