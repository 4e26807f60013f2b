// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package config

import (
	"time"

	"github.com/tomtom215/careerpath/internal/cache"
	"github.com/tomtom215/careerpath/internal/recommend"
)

// Config holds all application configuration.
//
// Configuration is loaded in layers (see LoadWithKoanf):
//  1. Struct defaults (Default)
//  2. Optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables (envTransformFunc mapping)
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Mongo    MongoConfig           `koanf:"mongo"`
	Source   SourceConfig          `koanf:"source"`
	Models   ModelsConfig          `koanf:"models"`
	Blend    recommend.BlendConfig `koanf:"blend"`
	Cache    CacheConfig           `koanf:"cache"`
	Server   ServerConfig          `koanf:"server"`
	Security SecurityConfig        `koanf:"security"`
	NATS     NATSConfig            `koanf:"nats"`
	Training TrainingConfig        `koanf:"training"`
	Breaker  BreakerConfig         `koanf:"breaker"`
	Logging  LoggingConfig         `koanf:"logging"`
	Metrics  MetricsConfig         `koanf:"metrics"`
}

// MongoConfig holds the historical data connection.
//
// Environment Variables:
//   - MONGODB_URI: Connection string; its path names the default database
//   - MONGODB_DATABASE: Database name, overriding the URI path
//   - MONGODB_TIMEOUT: Connect and query timeout (default: 10s)
type MongoConfig struct {
	URI      string        `koanf:"uri" validate:"required"`
	Database string        `koanf:"database"`
	Timeout  time.Duration `koanf:"timeout" validate:"gt=0"`
}

// SourceConfig selects where training data is read from.
//
// The duckdb driver reads the recommendations and careers tables of an
// analytical export instead of the live database.
type SourceConfig struct {
	Driver     string `koanf:"driver" validate:"oneof=mongo duckdb"`
	DuckDBPath string `koanf:"duckdb_path"`
}

// ModelsConfig controls model artifact storage and serving.
//
// Environment Variables:
//   - ML_MODEL_DIR: Artifact directory (default: models)
//   - ML_MODEL_BACKEND: file or badger (default: file)
//   - ML_SELECTION_POLICY: fixed-preference or best-by-score (default: fixed-preference)
type ModelsConfig struct {
	Dir             string `koanf:"dir" validate:"required"`
	Backend         string `koanf:"backend" validate:"oneof=file badger"`
	SelectionPolicy string `koanf:"selection_policy" validate:"selection_policy"`
	KeepVersions    int    `koanf:"keep_versions" validate:"gte=0"`
}

// CacheConfig holds the collaborative lookup cache settings.
type CacheConfig struct {
	Backend   string        `koanf:"backend" validate:"oneof=lru redis"`
	Size      int           `koanf:"size" validate:"gte=1"`
	TTL       time.Duration `koanf:"ttl" validate:"gt=0"`
	RedisURL  string        `koanf:"redis_url"`
	KeyPrefix string        `koanf:"key_prefix"`
}

// ToCache converts to the cache package configuration.
func (c CacheConfig) ToCache() cache.Config {
	return cache.Config{
		Backend:   cache.Backend(c.Backend),
		Capacity:  c.Size,
		TTL:       c.TTL,
		RedisURL:  c.RedisURL,
		KeyPrefix: c.KeyPrefix,
	}
}

// ServerConfig holds the HTTP listener settings used by serve mode.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// SecurityConfig holds authentication and request limiting settings
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"`
	JWTSecret         string        `koanf:"jwt_secret"`
	TokenTTL          time.Duration `koanf:"token_ttl"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// NATSConfig enables the model reload listener.
//
// When enabled, serve mode subscribes to ReloadSubject and reloads both model
// artifacts whenever a message arrives, so a separate train_models run is
// picked up without a restart.
type NATSConfig struct {
	Enabled       bool   `koanf:"enabled"`
	URL           string `koanf:"url"`
	ReloadSubject string `koanf:"reload_subject"`
	Publish       bool   `koanf:"publish"`
}

// TrainingConfig controls scheduled retraining in serve mode.
type TrainingConfig struct {
	Schedule  string        `koanf:"schedule" validate:"cron_schedule"`
	OnStartup bool          `koanf:"on_startup"`
	Timeout   time.Duration `koanf:"timeout" validate:"gt=0"`
}

// BreakerConfig configures the data source circuit breaker.
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests" validate:"gte=1"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout" validate:"gt=0"`
	FailureThreshold uint32        `koanf:"failure_threshold" validate:"gte=1"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// MetricsConfig controls metric export for one-shot CLI commands.
type MetricsConfig struct {
	// Textfile is written after each CLI command when set.
	Textfile string `koanf:"textfile"`
}

// Load loads configuration from defaults, an optional config file and
// environment variables.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
