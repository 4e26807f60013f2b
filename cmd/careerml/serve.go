// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/tomtom215/careerpath/internal/api"
	"github.com/tomtom215/careerpath/internal/auth"
	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/metrics"
	"github.com/tomtom215/careerpath/internal/service"
	"github.com/tomtom215/careerpath/internal/supervisor"
	"github.com/tomtom215/careerpath/internal/supervisor/services"
)

// cmdServe runs the HTTP API, training scheduler and reload listener until
// ctx is canceled. It prints nothing on stdout.
//
//nolint:gocyclo // sequential wiring of serve-mode components
func cmdServe(ctx context.Context, a *app, _ []string) (interface{}, error) {
	cfg := a.cfg
	metrics.SetAppInfo(version, runtime.Version())

	svc, err := service.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close service")
		}
	}()

	// Load whatever artifacts already exist so the first request does not
	// pay for it. Missing models are not an error here.
	svc.Reload(ctx)

	var jwtManager *auth.JWTManager
	switch cfg.Security.AuthMode {
	case auth.ModeJWT:
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			return nil, err
		}
		logging.Info().Msg("JWT authentication enabled")
	default:
		logging.Warn().Msg("Authentication is DISABLED (AUTH_MODE=none); only use this on a private network")
	}

	router := api.NewRouter(
		api.NewHandler(svc),
		auth.NewMiddleware(jwtManager, cfg.Security.AuthMode, nil),
		api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)),
	)

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Training.Timeout + cfg.Server.Timeout,
		IdleTimeout:       2 * time.Minute,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return nil, fmt.Errorf("create supervisor tree: %w", err)
	}

	logger := logging.Logger()
	origin := instanceID()

	training, err := services.NewTrainingService(svc, cfg.Training, logger)
	if err != nil {
		return nil, err
	}
	tree.AddModelService(training)

	var subscriber services.Subscriber
	if cfg.NATS.Enabled {
		nc, err := services.ConnectNATS(cfg.NATS.URL, "careerml-serve")
		if err != nil {
			return nil, err
		}
		defer nc.Close()
		subscriber = nc
		if cfg.NATS.Publish {
			svc.SetNotifier(services.NewNATSNotifier(nc, cfg.NATS.ReloadSubject, origin))
		}
	}
	tree.AddModelService(services.NewReloadService(svc, subscriber, services.ReloadServiceConfig{
		Subject: cfg.NATS.ReloadSubject,
		Hangup:  true,
		Origin:  origin,
	}, logger))

	tree.AddModelService(services.NewConfigWatchService(config.ConfigFile(), nil, func() {
		reloaded, err := config.Load()
		if err != nil {
			logging.Warn().Err(err).Msg("Ignoring invalid config change")
			return
		}
		logging.SetLevelString(reloaded.Logging.Level)
	}, logger))

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))

	logging.Info().
		Str("addr", server.Addr).
		Str("version", version).
		Str("instance", origin).
		Str("training_schedule", cfg.Training.Schedule).
		Bool("nats", cfg.NATS.Enabled).
		Msg("Starting careerml serve")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return nil, fmt.Errorf("supervisor: %w", err)
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		logging.Warn().Int("count", len(report)).Msg("Services did not stop within the shutdown timeout")
	}
	logging.Info().Msg("careerml serve stopped")
	return nil, nil
}
