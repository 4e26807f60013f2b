// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/service"
)

// Trainer runs one training cycle. *service.Service implements it.
type Trainer interface {
	TrainModels(ctx context.Context) *service.TrainResult
}

// TrainingService retrains the models on a cron schedule.
//
// An empty schedule disables periodic training; the service then only runs
// the optional startup training and idles until shutdown. Runs that would
// overlap a still-running one are skipped.
type TrainingService struct {
	trainer   Trainer
	schedule  cron.Schedule
	spec      string
	onStartup bool
	logger    zerolog.Logger
	name      string

	runs atomic.Int64
}

// NewTrainingService creates a training scheduler from cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainingService(trainer Trainer, cfg config.TrainingConfig, logger zerolog.Logger) (*TrainingService, error) {
	s := &TrainingService{
		trainer:   trainer,
		spec:      cfg.Schedule,
		onStartup: cfg.OnStartup,
		logger:    logger.With().Str("service", "training-scheduler").Logger(),
		name:      "training-scheduler",
	}
	if cfg.Schedule != "" {
		schedule, err := cron.ParseStandard(cfg.Schedule)
		if err != nil {
			return nil, fmt.Errorf("parse training schedule %q: %w", cfg.Schedule, err)
		}
		s.schedule = schedule
	}
	return s, nil
}

// Serve implements suture.Service.
func (s *TrainingService) Serve(ctx context.Context) error {
	s.logger.Info().
		Str("schedule", s.spec).
		Bool("on_startup", s.onStartup).
		Msg("training scheduler starting")

	if s.onStartup {
		s.train(ctx, "startup")
	}

	if s.schedule == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(s.schedule, cron.FuncJob(func() {
		s.train(ctx, "schedule")
	}))
	c.Start()

	if next := s.schedule.Next(time.Now()); !next.IsZero() {
		s.logger.Info().Time("next_run", next).Msg("training scheduled")
	}

	<-ctx.Done()

	// Stop returns a context that is done once running jobs finish.
	<-c.Stop().Done()
	s.logger.Info().Msg("training scheduler stopped")
	return ctx.Err()
}

func (s *TrainingService) train(ctx context.Context, trigger string) {
	if ctx.Err() != nil {
		return
	}
	s.runs.Add(1)

	ctx = logging.ContextWithNewCorrelationID(ctx)
	ctx = logging.ContextWithCommand(ctx, "train_models")
	log := s.logger.With().
		Str("trigger", trigger).
		Str("correlation_id", logging.CorrelationIDFromContext(ctx)).
		Logger()

	start := time.Now()
	res := s.trainer.TrainModels(ctx)
	if !res.Success {
		log.Warn().Str("error", res.Error).Msg("scheduled training failed")
		return
	}
	log.Info().
		Str("message", res.Message).
		Dur("duration", time.Since(start)).
		Msg("scheduled training complete")
}

// Runs returns how many training cycles the service has started.
func (s *TrainingService) Runs() int64 {
	return s.runs.Load()
}

// String returns the service name for logging.
func (s *TrainingService) String() string {
	return s.name
}
