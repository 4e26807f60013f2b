// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package services

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/metrics"
	"github.com/tomtom215/careerpath/internal/service"
)

// Reload signal sources.
const (
	SourceNATS   = "nats"
	SourceSIGHUP = "sighup"
	SourceManual = "manual"
)

// Reload signal outcomes.
const (
	outcomeReloaded = "reloaded"
	outcomeFailed   = "failed"
	outcomeDropped  = "dropped"
	outcomeIgnored  = "ignored"
)

// DefaultReloadInterval is the minimum spacing between two reloads.
const DefaultReloadInterval = 5 * time.Second

// Reloader swaps in the latest stored model artifacts. *service.Service
// implements it.
type Reloader interface {
	Reload(ctx context.Context) *service.ReloadResult
}

// Subscriber is the part of *nats.Conn the reload listener uses.
type Subscriber interface {
	Subscribe(subj string, cb nats.MsgHandler) (*nats.Subscription, error)
}

// ReloadServiceConfig configures a ReloadService.
type ReloadServiceConfig struct {
	// Subject is the NATS subject to listen on. Ignored when no connection
	// is given.
	Subject string

	// MinInterval throttles reloads. Signals arriving faster are dropped.
	// Default: DefaultReloadInterval
	MinInterval time.Duration

	// Hangup also reloads on SIGHUP.
	Hangup bool

	// Origin identifies this process. Reload messages it published itself
	// are ignored since its models are already current.
	Origin string
}

// ReloadService reloads both engines when told that new artifacts exist.
type ReloadService struct {
	reloader Reloader
	conn     Subscriber
	config   ReloadServiceConfig
	limiter  *rate.Limiter
	signals  chan string
	logger   zerolog.Logger
	name     string
}

// NewReloadService creates a reload listener. conn may be nil, in which case
// only SIGHUP and Trigger cause reloads.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloadService(reloader Reloader, conn Subscriber, cfg ReloadServiceConfig, logger zerolog.Logger) *ReloadService {
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = DefaultReloadInterval
	}
	return &ReloadService{
		reloader: reloader,
		conn:     conn,
		config:   cfg,
		limiter:  rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
		signals:  make(chan string, 1),
		logger:   logger.With().Str("service", "reload-listener").Logger(),
		name:     "reload-listener",
	}
}

// Trigger queues a reload. It never blocks: when a reload is already queued
// the signal is dropped.
func (s *ReloadService) Trigger(source string) {
	select {
	case s.signals <- source:
	default:
		metrics.RecordReloadSignal(source, outcomeDropped)
		s.logger.Debug().Str("source", source).Msg("reload already queued, signal dropped")
	}
}

// Serve implements suture.Service.
func (s *ReloadService) Serve(ctx context.Context) error {
	if s.conn != nil && s.config.Subject != "" {
		sub, err := s.conn.Subscribe(s.config.Subject, s.handleMessage)
		if err != nil {
			return fmt.Errorf("subscribe to %s: %w", s.config.Subject, err)
		}
		defer func() {
			if err := sub.Unsubscribe(); err != nil {
				s.logger.Debug().Err(err).Msg("unsubscribe reload subject")
			}
		}()
		s.logger.Info().Str("subject", s.config.Subject).Msg("listening for model reload messages")
	}

	var hangup chan os.Signal
	if s.config.Hangup {
		hangup = make(chan os.Signal, 1)
		signal.Notify(hangup, syscall.SIGHUP)
		defer signal.Stop(hangup)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-hangup:
			s.reload(ctx, SourceSIGHUP)
		case source := <-s.signals:
			s.reload(ctx, source)
		}
	}
}

func (s *ReloadService) handleMessage(msg *nats.Msg) {
	var update ModelsUpdated
	if err := json.Unmarshal(msg.Data, &update); err == nil && update.Origin != "" && update.Origin == s.config.Origin {
		metrics.RecordReloadSignal(SourceNATS, outcomeIgnored)
		return
	}
	s.Trigger(SourceNATS)
}

func (s *ReloadService) reload(ctx context.Context, source string) {
	if !s.limiter.Allow() {
		metrics.RecordReloadSignal(source, outcomeDropped)
		s.logger.Info().Str("source", source).Msg("reload throttled")
		return
	}

	ctx = logging.ContextWithNewCorrelationID(ctx)
	log := s.logger.With().
		Str("source", source).
		Str("correlation_id", logging.CorrelationIDFromContext(ctx)).
		Logger()

	res := s.reloader.Reload(ctx)
	if !res.Success {
		metrics.RecordReloadSignal(source, outcomeFailed)
		log.Warn().
			Str("collaborative_error", res.CollaborativeFiltering.Error).
			Str("academic_error", res.AcademicPredictor.Error).
			Msg("model reload failed")
		return
	}

	metrics.RecordReloadSignal(source, outcomeReloaded)
	log.Info().
		Str("collaborative_snapshot", res.CollaborativeFiltering.SnapshotID).
		Str("academic_snapshot", res.AcademicPredictor.SnapshotID).
		Msg("models reloaded")
}

// String returns the service name for logging.
func (s *ReloadService) String() string {
	return s.name
}
