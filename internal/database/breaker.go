// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package database

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/metrics"
	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend"
)

// BreakerSource wraps a Source with a circuit breaker. Once the backend has
// failed FailureThreshold times in a row, calls are rejected without touching
// it until Timeout elapses. Every failure is classified as
// recommend.KindDataUnavailable so training can fall back to bootstrap data.
type BreakerSource struct {
	src  Source
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// NewBreakerSource wraps src. The breaker is named "source-<backend>".
func NewBreakerSource(src Source, backend string, cfg config.BreakerConfig) *BreakerSource {
	name := "source-" + backend
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 1
	}

	metrics.BreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= threshold
			if trip {
				logging.Warn().
					Str("breaker", name).
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return trip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.RecordBreakerTransition(name, from.String(), to.String())
		},
	})

	return &BreakerSource{src: src, cb: cb, name: name}
}

// Unwrap returns the underlying source.
func (b *BreakerSource) Unwrap() Source {
	return b.src
}

// State returns the breaker state ("closed", "half-open" or "open").
func (b *BreakerSource) State() string {
	return b.cb.State().String()
}

func (b *BreakerSource) execute(op string, fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordBreakerRequest(b.name, "rejected")
			logging.Warn().Str("breaker", b.name).Str("op", op).Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.RecordBreakerRequest(b.name, "failure")
		}
		return nil, recommend.E(recommend.KindDataUnavailable, op, err)
	}
	metrics.RecordBreakerRequest(b.name, "success")
	return result, nil
}

// castResult type-asserts a breaker result.
func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// Recommendations implements Source.
func (b *BreakerSource) Recommendations(ctx context.Context) ([]models.RecommendationRecord, error) {
	return castResult[[]models.RecommendationRecord](b.execute("database.Recommendations", func() (any, error) {
		return b.src.Recommendations(ctx)
	}))
}

// Careers implements Source.
func (b *BreakerSource) Careers(ctx context.Context) ([]models.Career, error) {
	return castResult[[]models.Career](b.execute("database.Careers", func() (any, error) {
		return b.src.Careers(ctx)
	}))
}

// Ping implements Source.
func (b *BreakerSource) Ping(ctx context.Context) error {
	_, err := b.execute("database.Ping", func() (any, error) {
		return nil, b.src.Ping(ctx)
	})
	return err
}

// Close closes the underlying source. It bypasses the breaker.
func (b *BreakerSource) Close() error {
	return b.src.Close()
}

var _ Source = (*BreakerSource)(nil)
