// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/careerpath/internal/auth"
	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/service"
	"github.com/tomtom215/careerpath/internal/supervisor/services"
	"github.com/tomtom215/careerpath/internal/validation"
)

// maxInputBytes bounds stdin documents.
const maxInputBytes = 64 << 20

// commandService is the part of *service.Service the one-shot commands use.
type commandService interface {
	TrainModels(ctx context.Context) *service.TrainResult
	EnhanceRecommendations(ctx context.Context, req *service.EnhanceRequest) *service.EnhanceResult
	SimilarCareers(ctx context.Context, careerID string, limit int) *service.SimilarResult
	PredictTrends(ctx context.Context, req *service.TrendsRequest) *service.TrendsResult
	PredictMatch(ctx context.Context, req *service.PredictRequest) *service.PredictResult
	ModelInfo(ctx context.Context) *service.ModelInfoResult
	HealthCheck(ctx context.Context) *service.HealthResult
	ExportTrainingData(ctx context.Context, path string) *service.ExportResult
	SetNotifier(n service.Notifier)
	Close() error
}

func newService(ctx context.Context, cfg *config.Config) (commandService, error) {
	return service.New(ctx, cfg)
}

type app struct {
	cfg        *config.Config
	stdin      io.Reader
	stdout     io.Writer
	newService func(ctx context.Context, cfg *config.Config) (commandService, error)
}

// command runs with the remaining arguments and returns the document to
// print. A returned error is printed as {"error": ...} with exit status 1.
type command func(ctx context.Context, a *app, args []string) (interface{}, error)

var commands = map[string]command{
	"train_models":            cmdTrainModels,
	"enhance_recommendations": cmdEnhance,
	"similar_careers":         cmdSimilarCareers,
	"predict_trends":          cmdPredictTrends,
	"predict_match":           cmdPredictMatch,
	"model_info":              cmdModelInfo,
	"health_check":            cmdHealthCheck,
	"export_training_data":    cmdExport,
	"issue_token":             cmdIssueToken,
	"serve":                   cmdServe,
}

type errorOutput struct {
	Error string `json:"error"`
}

func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		logging.Info().Strs("commands", commandNames()).Msg("usage: careerml <command> [args]")
		writeError(a.stdout, errors.New("No command provided")) //nolint:staticcheck // wire-visible message
		return 1
	}

	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		writeError(a.stdout, fmt.Errorf("Unknown command: %s", name)) //nolint:staticcheck // wire-visible message
		return 1
	}

	ctx = logging.ContextWithNewCorrelationID(ctx)
	ctx = logging.ContextWithCommand(ctx, name)
	log := logging.Ctx(ctx)
	start := time.Now()

	out, err := runCommand(ctx, a, cmd, args[1:])
	if err != nil {
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("Command failed")
		writeError(a.stdout, err)
		return 1
	}

	log.Debug().Dur("duration", time.Since(start)).Msg("Command complete")
	if out != nil {
		writeJSON(a.stdout, out)
	}
	return 0
}

// runCommand converts a panic into an error so the caller still gets JSON.
func runCommand(ctx context.Context, a *app, cmd command, args []string) (out interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%v", r)
		}
	}()
	return cmd(ctx, a, args)
}

// withService opens the service for one command and closes it afterwards.
func (a *app) withService(ctx context.Context, fn func(svc commandService) interface{}) (interface{}, error) {
	svc, err := a.newService(ctx, a.cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to close service")
		}
	}()
	return fn(svc), nil
}

func cmdTrainModels(ctx context.Context, a *app, _ []string) (interface{}, error) {
	return a.withService(ctx, func(svc commandService) interface{} {
		if a.cfg.NATS.Enabled && a.cfg.NATS.Publish {
			nc, err := services.ConnectNATS(a.cfg.NATS.URL, "careerml-train")
			if err != nil {
				logging.Ctx(ctx).Warn().Err(err).Msg("NATS unavailable, serve instances will not be notified")
			} else {
				defer func() {
					if err := nc.Flush(); err != nil {
						logging.Ctx(ctx).Warn().Err(err).Msg("Failed to flush NATS")
					}
					nc.Close()
				}()
				origin := fmt.Sprintf("cli-%d", os.Getpid())
				svc.SetNotifier(services.NewNATSNotifier(nc, a.cfg.NATS.ReloadSubject, origin))
			}
		}
		return svc.TrainModels(ctx)
	})
}

func cmdEnhance(ctx context.Context, a *app, _ []string) (interface{}, error) {
	var req service.EnhanceRequest
	if err := a.readInput(&req); err != nil {
		return nil, err
	}
	return a.withService(ctx, func(svc commandService) interface{} {
		return svc.EnhanceRecommendations(ctx, &req)
	})
}

func cmdSimilarCareers(ctx context.Context, a *app, args []string) (interface{}, error) {
	careerID := ""
	if len(args) > 0 {
		careerID = args[0]
	}
	limit := service.DefaultSimilarLimit
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid limit %q: must be an integer", args[1])
		}
		limit = n
	}
	return a.withService(ctx, func(svc commandService) interface{} {
		return svc.SimilarCareers(ctx, careerID, limit)
	})
}

func cmdPredictTrends(ctx context.Context, a *app, _ []string) (interface{}, error) {
	var req service.TrendsRequest
	if err := a.readInput(&req); err != nil {
		return nil, err
	}
	return a.withService(ctx, func(svc commandService) interface{} {
		return svc.PredictTrends(ctx, &req)
	})
}

func cmdPredictMatch(ctx context.Context, a *app, _ []string) (interface{}, error) {
	var req service.PredictRequest
	if err := a.readInput(&req); err != nil {
		return nil, err
	}
	return a.withService(ctx, func(svc commandService) interface{} {
		return svc.PredictMatch(ctx, &req)
	})
}

func cmdModelInfo(ctx context.Context, a *app, _ []string) (interface{}, error) {
	return a.withService(ctx, func(svc commandService) interface{} {
		return svc.ModelInfo(ctx)
	})
}

func cmdHealthCheck(ctx context.Context, a *app, _ []string) (interface{}, error) {
	return a.withService(ctx, func(svc commandService) interface{} {
		return svc.HealthCheck(ctx)
	})
}

func cmdExport(ctx context.Context, a *app, args []string) (interface{}, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return nil, errors.New("usage: export_training_data <path>")
	}
	return a.withService(ctx, func(svc commandService) interface{} {
		return svc.ExportTrainingData(ctx, args[0])
	})
}

type tokenOutput struct {
	Token     string    `json:"token"`
	Subject   string    `json:"subject"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func cmdIssueToken(_ context.Context, a *app, args []string) (interface{}, error) {
	if len(args) == 0 || args[0] == "" {
		return nil, errors.New("usage: issue_token <subject> [admin|client]")
	}
	role := auth.RoleClient
	if len(args) > 1 {
		role = args[1]
	}
	if role != auth.RoleAdmin && role != auth.RoleClient {
		return nil, fmt.Errorf("unknown role %q: must be %s or %s", role, auth.RoleAdmin, auth.RoleClient)
	}

	manager, err := auth.NewJWTManager(&a.cfg.Security)
	if err != nil {
		return nil, err
	}
	token, err := manager.GenerateToken(args[0], role)
	if err != nil {
		return nil, err
	}
	claims, err := manager.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return &tokenOutput{
		Token:     token,
		Subject:   args[0],
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

// readInput decodes the JSON document on stdin into dst and validates it.
func (a *app) readInput(dst interface{}) error {
	data, err := io.ReadAll(io.LimitReader(a.stdin, maxInputBytes+1))
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if len(data) > maxInputBytes {
		return fmt.Errorf("input exceeds %d bytes", maxInputBytes)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("invalid input JSON: %w", err)
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		return verr
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal(errorOutput{Error: err.Error()}) //nolint:errcheck
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write output")
	}
}

func writeError(w io.Writer, err error) {
	writeJSON(w, errorOutput{Error: err.Error()})
}

// commandNames lists the available commands, sorted.
func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// instanceID identifies a serve process in reload messages.
func instanceID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "careerml"
	}
	return host + "-" + uuid.NewString()[:8]
}
