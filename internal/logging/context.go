// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	correlationIDKey contextKey = "correlation_id"
	commandKey       contextKey = "command"
)

// GenerateCorrelationID returns the first 8 characters of a new UUID.
func GenerateCorrelationID() string {
	return uuid.New().String()[:8]
}

// ContextWithCorrelationID returns a new context carrying id.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// ContextWithNewCorrelationID returns a context with a newly generated correlation ID.
//
//	ctx = logging.ContextWithNewCorrelationID(ctx)
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// CorrelationIDFromContext returns the correlation ID, or "" if absent.
func CorrelationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithCommand tags ctx with the command or endpoint being served
// (train_models, enhance_recommendations, ...).
func ContextWithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// CommandFromContext returns the command name, or "" if absent.
func CommandFromContext(ctx context.Context) string {
	if c, ok := ctx.Value(commandKey).(string); ok {
		return c
	}
	return ""
}

// Ctx returns a logger enriched with the context's correlation ID and command.
//
//	logging.Ctx(ctx).Info().Int("users", n).Msg("interaction matrix built")
func Ctx(ctx context.Context) *zerolog.Logger {
	c := Logger().With()
	if ctx != nil {
		if id := CorrelationIDFromContext(ctx); id != "" {
			c = c.Str("correlation_id", id)
		}
		if cmd := CommandFromContext(ctx); cmd != "" {
			c = c.Str("command", cmd)
		}
	}
	l := c.Logger()
	return &l
}

// WithComponent creates a child logger tagged with a component name.
//
//	logger := logging.WithComponent("collab")
func WithComponent(component string) zerolog.Logger {
	return Logger().With().Str("component", component).Logger()
}
