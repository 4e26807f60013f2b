// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package config provides layered configuration for the careerml binary.

Configuration is loaded with koanf in three layers, later layers winning:

 1. Struct defaults (Default)
 2. An optional YAML file: CONFIG_PATH, or careerml.yaml in the working
    directory, or /etc/careerpath/careerml.yaml
 3. Environment variables, mapped explicitly (unmapped variables are ignored)

# Environment Variables

Historical data:
  - MONGODB_URI (default mongodb://localhost:27017/career_recommender)
  - MONGODB_DATABASE, MONGODB_TIMEOUT
  - SOURCE_DRIVER: mongo or duckdb; DUCKDB_PATH for the latter

Models:
  - ML_MODEL_DIR (default models), ML_MODEL_BACKEND (file or badger)
  - ML_SELECTION_POLICY: fixed-preference (default) or best-by-score
  - ML_CF_WEIGHT, ML_AP_WEIGHT, ML_CF_DEPTH

Cache:
  - CACHE_BACKEND (lru or redis), CACHE_SIZE, CACHE_TTL, REDIS_URL

Serve mode:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT
  - AUTH_MODE (none or jwt), JWT_SECRET, CORS_ORIGINS (comma-separated)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - NATS_ENABLED, NATS_URL, NATS_RELOAD_SUBJECT, NATS_PUBLISH
  - TRAINING_SCHEDULE (cron), TRAINING_ON_STARTUP, TRAINING_TIMEOUT
  - BREAKER_MAX_REQUESTS, BREAKER_INTERVAL, BREAKER_TIMEOUT,
    BREAKER_FAILURE_THRESHOLD

Observability:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
  - METRICS_TEXTFILE: write Prometheus metrics here after CLI commands

# Validation

Load validates struct tags through the validation package (enumerations,
ranges, cron schedules and selection policies) and then runs cross-field
checks such as REDIS_URL being required for the redis cache backend.
*/
package config
