// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package main is the careerml command.
//
// careerml is invoked by the recommender API for each ML operation and prints
// one JSON document on stdout. Logs go to stderr.
//
// # Commands
//
//	careerml train_models
//	careerml enhance_recommendations < {"user": {...}, "recommendations": [...]}
//	careerml similar_careers <career_id> [limit]
//	careerml predict_trends < {"historical_data": [...]}
//	careerml predict_match < {"user": {...}, "career_id": "..."}
//	careerml model_info
//	careerml health_check
//	careerml export_training_data <path.duckdb>
//	careerml issue_token <subject> [admin|client]
//	careerml serve
//
// A missing or unknown command, unreadable input or a bad argument prints
// {"error": "..."} and exits with status 1. Operation failures (for example a
// failed enhancement) are reported inside the command's own JSON with exit
// status 0, so callers always get a parseable document.
//
// # Configuration
//
// Configuration is loaded with koanf: built-in defaults, then an optional
// config.yaml (CONFIG_PATH), then environment variables:
//   - MONGODB_URI: historical data (default mongodb://localhost:27017/career_recommender)
//   - ML_MODEL_DIR: artifact directory (default models)
//   - ML_SELECTION_POLICY: fixed-preference or best-by-score
//   - LOG_LEVEL, LOG_FORMAT: logging
//   - METRICS_TEXTFILE: write Prometheus metrics after each command
//
// # Serve Mode
//
// serve runs an HTTP API exposing the same operations, a cron training
// scheduler (TRAINING_SCHEDULE) and a reload listener (NATS_ENABLED,
// NATS_RELOAD_SUBJECT, and SIGHUP) under a suture supervisor tree. It exits
// on SIGINT or SIGTERM.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/metrics"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		writeError(stdout, err)
		return 1
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: os.Stderr,
	})

	a := &app{
		cfg:        cfg,
		stdin:      stdin,
		stdout:     stdout,
		newService: newService,
	}
	code := a.run(ctx, args)

	if err := metrics.WriteToTextfile(cfg.Metrics.Textfile); err != nil {
		logging.Warn().Err(err).Str("path", cfg.Metrics.Textfile).Msg("Failed to write metrics textfile")
	}
	return code
}
