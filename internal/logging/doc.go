// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package logging provides the process-wide zerolog logger.

Command output owns stdout, so every log line goes to stderr by default.

	logging.Init(logging.Config{Level: "info", Format: "json"})
	logging.Info().Str("command", "train_models").Msg("starting")

Each command invocation and HTTP request carries a correlation id:

	ctx = logging.ContextWithNewCorrelationID(ctx)
	logging.Ctx(ctx).Warn().Err(err).Msg("model artifact unreadable")

Components take a child logger:

	logger := logging.WithComponent("collab")

Libraries that want a *slog.Logger (sutureslog) get one backed by the same
zerolog output through NewSlogLogger.
*/
package logging
