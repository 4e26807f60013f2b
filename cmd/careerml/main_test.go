// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/careerpath/internal/auth"
	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/service"
)

type fakeService struct {
	enhanceReq *service.EnhanceRequest
	predictReq *service.PredictRequest
	similarID  string
	similarN   int
	exportPath string
	closed     bool
	panicOn    string
}

func (f *fakeService) TrainModels(context.Context) *service.TrainResult {
	if f.panicOn == "train" {
		panic("boom")
	}
	return &service.TrainResult{Success: true, Message: service.MessageTrained}
}

func (f *fakeService) EnhanceRecommendations(_ context.Context, req *service.EnhanceRequest) *service.EnhanceResult {
	f.enhanceReq = req
	return &service.EnhanceResult{Success: true, MLEnhanced: true}
}

func (f *fakeService) SimilarCareers(_ context.Context, id string, limit int) *service.SimilarResult {
	f.similarID, f.similarN = id, limit
	return &service.SimilarResult{Success: true}
}

func (f *fakeService) PredictTrends(context.Context, *service.TrendsRequest) *service.TrendsResult {
	return &service.TrendsResult{Success: true}
}

func (f *fakeService) PredictMatch(_ context.Context, req *service.PredictRequest) *service.PredictResult {
	f.predictReq = req
	return &service.PredictResult{Success: true, CareerID: req.CareerID.String(), SuccessProbability: 0.7}
}

func (f *fakeService) ModelInfo(context.Context) *service.ModelInfoResult {
	return &service.ModelInfoResult{Success: true, Active: service.ActiveModels{SelectionPolicy: "best-by-score"}}
}

func (f *fakeService) HealthCheck(context.Context) *service.HealthResult {
	return &service.HealthResult{Healthy: true, Status: service.StatusOperational}
}

func (f *fakeService) ExportTrainingData(_ context.Context, path string) *service.ExportResult {
	f.exportPath = path
	return &service.ExportResult{Success: true, Path: path}
}

func (f *fakeService) SetNotifier(service.Notifier) {}

func (f *fakeService) Close() error {
	f.closed = true
	return nil
}

func newTestApp(t *testing.T, stdin string) (*app, *fakeService, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Security.JWTSecret = strings.Repeat("s", auth.MinSecretLength)
	svc := &fakeService{}
	out := &bytes.Buffer{}
	a := &app{
		cfg:    cfg,
		stdin:  strings.NewReader(stdin),
		stdout: out,
		newService: func(context.Context, *config.Config) (commandService, error) {
			return svc, nil
		},
	}
	return a, svc, out
}

func decodeOutput(t *testing.T, out *bytes.Buffer) map[string]interface{} {
	t.Helper()
	if !strings.HasSuffix(out.String(), "\n") {
		t.Errorf("output %q is not newline terminated", out.String())
	}
	var m map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &m); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, out.String())
	}
	return m
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		wantErr string
	}{
		{"no command", nil, "", "No command provided"},
		{"unknown command", []string{"fly"}, "", "Unknown command: fly"},
		{"bad limit", []string{"similar_careers", "c1", "x"}, "", `invalid limit "x": must be an integer`},
		{"invalid json", []string{"enhance_recommendations"}, "{not json", "invalid input JSON"},
		{"predict without career", []string{"predict_match"}, `{"user": {"_id": "u1"}}`, "career_id is required"},
		{"export without path", []string{"export_training_data"}, "", "usage: export_training_data"},
		{"token without subject", []string{"issue_token"}, "", "usage: issue_token"},
		{"token bad role", []string{"issue_token", "api", "root"}, "", `unknown role "root"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, out := newTestApp(t, tt.stdin)
			if code := a.run(context.Background(), tt.args); code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			m := decodeOutput(t, out)
			msg, _ := m["error"].(string)
			if !strings.Contains(msg, tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", msg, tt.wantErr)
			}
		})
	}
}

func TestRun_Enhance(t *testing.T) {
	stdin := `{"user": {"_id": "u1", "kcseResults": {"meanPoints": 10, "subjects": [{"subject": "Mathematics", "grade": "A"}]}},
		"recommendations": [{"id": "c1", "title": "Engineer", "match": 80}]}`
	a, svc, out := newTestApp(t, stdin)

	if code := a.run(context.Background(), []string{"enhance_recommendations"}); code != 0 {
		t.Fatalf("exit code = %d, output %s", code, out.String())
	}
	if svc.enhanceReq == nil || len(svc.enhanceReq.Recommendations) != 1 {
		t.Fatalf("service got %+v", svc.enhanceReq)
	}
	if got := svc.enhanceReq.Recommendations[0].ID.String(); got != "c1" {
		t.Errorf("candidate id = %q, want c1", got)
	}
	if got := svc.enhanceReq.User.UserIDOrUnknown(); got != "u1" {
		t.Errorf("user id = %q, want u1", got)
	}
	if !svc.closed {
		t.Error("service was not closed")
	}
	m := decodeOutput(t, out)
	if m["success"] != true || m["ml_enhanced"] != true {
		t.Errorf("output = %v", m)
	}
}

func TestRun_SimilarCareersDefaults(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantID    string
		wantLimit int
	}{
		{"default limit", []string{"similar_careers", "c1"}, "c1", service.DefaultSimilarLimit},
		{"explicit limit", []string{"similar_careers", "c2", "3"}, "c2", 3},
		{"no id", []string{"similar_careers"}, "", service.DefaultSimilarLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, svc, out := newTestApp(t, "")
			if code := a.run(context.Background(), tt.args); code != 0 {
				t.Fatalf("exit code = %d, output %s", code, out.String())
			}
			if svc.similarID != tt.wantID || svc.similarN != tt.wantLimit {
				t.Errorf("called with (%q, %d), want (%q, %d)", svc.similarID, svc.similarN, tt.wantID, tt.wantLimit)
			}
		})
	}
}

func TestRun_Export(t *testing.T) {
	a, svc, out := newTestApp(t, "")
	if code := a.run(context.Background(), []string{"export_training_data", "/tmp/training.duckdb"}); code != 0 {
		t.Fatalf("exit code = %d, output %s", code, out.String())
	}
	if svc.exportPath != "/tmp/training.duckdb" {
		t.Errorf("export path = %q", svc.exportPath)
	}
}

func TestRun_PanicBecomesError(t *testing.T) {
	a, svc, out := newTestApp(t, "")
	svc.panicOn = "train"

	if code := a.run(context.Background(), []string{"train_models"}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	m := decodeOutput(t, out)
	if m["error"] != "boom" {
		t.Errorf("error = %v, want boom", m["error"])
	}
	if !svc.closed {
		t.Error("service was not closed after panic")
	}
}

func TestRun_ServiceOpenFailure(t *testing.T) {
	a, _, out := newTestApp(t, "")
	a.newService = func(context.Context, *config.Config) (commandService, error) {
		return nil, errors.New("mongo unreachable")
	}

	if code := a.run(context.Background(), []string{"health_check"}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if m := decodeOutput(t, out); m["error"] != "mongo unreachable" {
		t.Errorf("error = %v", m["error"])
	}
}

func TestRun_IssueToken(t *testing.T) {
	a, _, out := newTestApp(t, "")
	if code := a.run(context.Background(), []string{"issue_token", "recommender-api", auth.RoleAdmin}); code != 0 {
		t.Fatalf("exit code = %d, output %s", code, out.String())
	}

	var tok tokenOutput
	if err := json.Unmarshal(out.Bytes(), &tok); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tok.Subject != "recommender-api" || tok.Role != auth.RoleAdmin {
		t.Errorf("token output = %+v", tok)
	}

	manager, err := auth.NewJWTManager(&a.cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	claims, err := manager.ValidateToken(tok.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Role != auth.RoleAdmin {
		t.Errorf("claims role = %q", claims.Role)
	}
}

func TestCommandNames(t *testing.T) {
	names := commandNames()
	if len(names) != len(commands) {
		t.Fatalf("got %d names, want %d", len(names), len(commands))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestRun_PredictMatch(t *testing.T) {
	a, svc, out := newTestApp(t, `{"user": {"_id": "u1"}, "career_id": "c9"}`)

	if code := a.run(context.Background(), []string{"predict_match"}); code != 0 {
		t.Fatalf("exit code = %d, output %s", code, out.String())
	}
	if svc.predictReq == nil || svc.predictReq.CareerID != "c9" || svc.predictReq.User.UserIDOrUnknown() != "u1" {
		t.Fatalf("service got %+v", svc.predictReq)
	}
	m := decodeOutput(t, out)
	if m["success_probability"] != 0.7 || m["career_id"] != "c9" {
		t.Errorf("output = %v", m)
	}
}

func TestRun_ModelInfo(t *testing.T) {
	a, _, out := newTestApp(t, "")

	if code := a.run(context.Background(), []string{"model_info"}); code != 0 {
		t.Fatalf("exit code = %d, output %s", code, out.String())
	}
	m := decodeOutput(t, out)
	active, _ := m["active"].(map[string]interface{})
	if m["success"] != true || active["selection_policy"] != "best-by-score" {
		t.Errorf("output = %v", m)
	}
}
