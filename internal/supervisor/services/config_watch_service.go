// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/config"
)

// WatchFunc starts watching path and calls onChange on every change.
// config.WatchConfigFile is the production implementation.
type WatchFunc func(path string, onChange func()) error

// ConfigWatchService applies runtime-safe settings (currently the log level)
// when the config file changes. Listener, model and security settings still
// need a restart.
type ConfigWatchService struct {
	path     string
	watch    WatchFunc
	onChange func()
	logger   zerolog.Logger
	name     string
}

// NewConfigWatchService creates a watcher for path. A nil watch uses
// config.WatchConfigFile.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewConfigWatchService(path string, watch WatchFunc, onChange func(), logger zerolog.Logger) *ConfigWatchService {
	if watch == nil {
		watch = config.WatchConfigFile
	}
	return &ConfigWatchService{
		path:     path,
		watch:    watch,
		onChange: onChange,
		logger:   logger.With().Str("service", "config-watcher").Logger(),
		name:     "config-watcher",
	}
}

// Serve implements suture.Service. Without a config file it idles.
func (s *ConfigWatchService) Serve(ctx context.Context) error {
	if s.path != "" {
		err := s.watch(s.path, func() {
			s.logger.Info().Str("path", s.path).Msg("config file changed")
			s.onChange()
		})
		if err != nil {
			return fmt.Errorf("watch %s: %w", s.path, err)
		}
		s.logger.Info().Str("path", s.path).Msg("watching config file")
	}

	<-ctx.Done()
	return ctx.Err()
}

// String returns the service name for logging.
func (s *ConfigWatchService) String() string {
	return s.name
}
