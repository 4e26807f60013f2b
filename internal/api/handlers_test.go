// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/careerpath/internal/auth"
	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend"
	"github.com/tomtom215/careerpath/internal/recommend/storage"
	"github.com/tomtom215/careerpath/internal/service"
)

const testSecret = "test_secret_with_at_least_32_characters_for_testing"

type mockService struct {
	mu sync.Mutex

	healthy    bool
	trainErr   string
	reloadOK   bool
	lastLimit  int
	lastCareer string
	lastUser   string
	lastCount  int
	trainCalls int
	infoErr    string
}

func (m *mockService) TrainModels(context.Context) *service.TrainResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trainCalls++
	if m.trainErr != "" {
		return &service.TrainResult{Success: false, Error: m.trainErr}
	}
	return &service.TrainResult{Success: true, Message: service.MessageTrained}
}

func (m *mockService) EnhanceRecommendations(_ context.Context, req *service.EnhanceRequest) *service.EnhanceResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUser = req.User.UserIDOrUnknown()
	m.lastCount = len(req.Recommendations)

	out := make([]models.EnhancedRecommendation, len(req.Recommendations))
	for i := range req.Recommendations {
		out[i] = models.Passthrough(req.Recommendations[i])
	}
	return &service.EnhanceResult{Success: true, EnhancedRecommendations: out}
}

func (m *mockService) SimilarCareers(_ context.Context, careerID string, limit int) *service.SimilarResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastCareer, m.lastLimit = careerID, limit
	return &service.SimilarResult{
		Success:        true,
		SimilarCareers: []recommend.SimilarCareer{{CareerID: "career2", SimilarityScore: 0.5}},
	}
}

func (m *mockService) PredictTrends(_ context.Context, req *service.TrendsRequest) *service.TrendsResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastCount = len(req.HistoricalData)
	return &service.TrendsResult{Success: true, Trends: []recommend.Trend{}}
}

func (m *mockService) PredictMatch(_ context.Context, req *service.PredictRequest) *service.PredictResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUser, m.lastCareer = req.User.UserIDOrUnknown(), req.CareerID.String()
	rating := 0.42
	return &service.PredictResult{
		Success:             true,
		UserID:              m.lastUser,
		CareerID:            m.lastCareer,
		SuccessProbability:  0.8,
		CollaborativeRating: &rating,
	}
}

func (m *mockService) ModelInfo(context.Context) *service.ModelInfoResult {
	if m.infoErr != "" {
		return &service.ModelInfoResult{Success: false, Error: m.infoErr}
	}
	return &service.ModelInfoResult{
		Success:   true,
		Artifacts: []storage.Metadata{{Name: storage.CollaborativeArtifact, Version: 3}},
		Active:    service.ActiveModels{CollaborativeFiltering: "snap-1", SelectionPolicy: "fixed-preference"},
		Blender:   recommend.BlenderStats{Requests: 7},
	}
}

func (m *mockService) HealthCheck(context.Context) *service.HealthResult {
	status := service.StatusDegraded
	if m.healthy {
		status = service.StatusOperational
	}
	return &service.HealthResult{Healthy: m.healthy, Status: status}
}

func (m *mockService) Reload(context.Context) *service.ReloadResult {
	return &service.ReloadResult{Success: m.reloadOK}
}

func newTestServer(t *testing.T, svc MLService, mode string) (http.Handler, *auth.JWTManager) {
	t.Helper()

	sec := &config.SecurityConfig{
		AuthMode:        mode,
		JWTSecret:       testSecret,
		TokenTTL:        time.Hour,
		RateLimitReqs:   1000,
		RateLimitWindow: time.Minute,
	}
	jwtManager, err := auth.NewJWTManager(sec)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	router := NewRouter(
		NewHandler(svc),
		auth.NewMiddleware(jwtManager, mode, authErrorResponder),
		NewChiMiddleware(ChiMiddlewareConfigFrom(sec)),
	)
	return router.Setup(), jwtManager
}

func do(t *testing.T, h http.Handler, method, path, body, token string) (*httptest.ResponseRecorder, models.APIResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp models.APIResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, resp
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		healthy bool
		want    int
	}{
		{"operational", true, http.StatusOK},
		{"degraded", false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestServer(t, &mockService{healthy: tt.healthy}, auth.ModeJWT)

			w, resp := do(t, h, http.MethodGet, "/api/v1/health", "", "")
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
			if resp.Success != tt.healthy {
				t.Errorf("success = %v, want %v", resp.Success, tt.healthy)
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Error("missing X-Request-ID header")
			}
		})
	}
}

func TestHealthLive(t *testing.T) {
	h, _ := newTestServer(t, &mockService{}, auth.ModeNone)

	w, resp := do(t, h, http.MethodGet, "/api/v1/health/live", "", "")
	if w.Code != http.StatusOK || !resp.Success {
		t.Fatalf("status = %d success = %v", w.Code, resp.Success)
	}
}

func TestEnhance(t *testing.T) {
	svc := &mockService{}
	h, _ := newTestServer(t, svc, auth.ModeNone)

	body := `{"user":{"_id":"user1"},"recommendations":[{"id":"career1","match":70,"extra":"x"},{"id":"career2","match":60}]}`
	w, resp := do(t, h, http.MethodPost, "/api/v1/ml/enhance", body, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if !resp.Success {
		t.Error("expected success")
	}
	if svc.lastUser != "user1" || svc.lastCount != 2 {
		t.Errorf("service saw user=%q count=%d", svc.lastUser, svc.lastCount)
	}
	if !strings.Contains(w.Body.String(), `"extra":"x"`) {
		t.Errorf("extra field not passed through: %s", w.Body.String())
	}
}

func TestEnhanceEmptyBody(t *testing.T) {
	svc := &mockService{lastCount: -1}
	h, _ := newTestServer(t, svc, auth.ModeNone)

	w, _ := do(t, h, http.MethodPost, "/api/v1/ml/enhance", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if svc.lastCount != 0 || svc.lastUser != "unknown" {
		t.Errorf("service saw user=%q count=%d", svc.lastUser, svc.lastCount)
	}
}

func TestEnhanceInvalidJSON(t *testing.T) {
	h, _ := newTestServer(t, &mockService{}, auth.ModeNone)

	w, resp := do(t, h, http.MethodPost, "/api/v1/ml/enhance", `{"user":`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeBadRequest {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestSimilarCareers(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantLimit int
	}{
		{"default limit", "", http.StatusOK, service.DefaultSimilarLimit},
		{"explicit limit", "?limit=3", http.StatusOK, 3},
		{"non-integer", "?limit=abc", http.StatusBadRequest, 0},
		{"zero", "?limit=0", http.StatusBadRequest, 0},
		{"too large", "?limit=101", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			h, _ := newTestServer(t, svc, auth.ModeNone)

			w, resp := do(t, h, http.MethodGet, "/api/v1/ml/careers/career1/similar"+tt.query, "", "")
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				if resp.Error == nil || resp.Error.Code != models.ErrCodeValidation {
					t.Errorf("error = %+v", resp.Error)
				}
				return
			}
			if svc.lastCareer != "career1" || svc.lastLimit != tt.wantLimit {
				t.Errorf("service saw career=%q limit=%d", svc.lastCareer, svc.lastLimit)
			}
		})
	}
}

func TestTrends(t *testing.T) {
	svc := &mockService{}
	h, _ := newTestServer(t, svc, auth.ModeNone)

	body := `{"historical_data":[{"user":"u1","recommendations":[{"career":"career1","match":80}]},{"user":"u2","recommendations":[]}]}`
	w, _ := do(t, h, http.MethodPost, "/api/v1/ml/trends", body, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if svc.lastCount != 2 {
		t.Errorf("service saw %d records, want 2", svc.lastCount)
	}
}

func TestTrain(t *testing.T) {
	tests := []struct {
		name     string
		trainErr string
		wantCode int
		wantErr  string
	}{
		{"success", "", http.StatusOK, ""},
		{"in progress", service.ErrTrainingInProgress.Error(), http.StatusConflict, models.ErrCodeTrainingInProgress},
		{"failure", "boom", http.StatusInternalServerError, models.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestServer(t, &mockService{trainErr: tt.trainErr}, auth.ModeNone)

			w, resp := do(t, h, http.MethodPost, "/api/v1/ml/train", "", "")
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantErr != "" && (resp.Error == nil || resp.Error.Code != tt.wantErr) {
				t.Errorf("error = %+v, want code %s", resp.Error, tt.wantErr)
			}
		})
	}
}

func TestReload(t *testing.T) {
	for _, ok := range []bool{true, false} {
		h, _ := newTestServer(t, &mockService{reloadOK: ok}, auth.ModeNone)

		w, resp := do(t, h, http.MethodPost, "/api/v1/ml/reload", "", "")
		want := http.StatusOK
		if !ok {
			want = http.StatusInternalServerError
		}
		if w.Code != want || resp.Success != ok {
			t.Errorf("reloadOK=%v: status = %d success = %v", ok, w.Code, resp.Success)
		}
	}
}

func TestJWTAuthorization(t *testing.T) {
	svc := &mockService{}
	h, jwtManager := newTestServer(t, svc, auth.ModeJWT)

	clientToken, err := jwtManager.GenerateToken("recommender-api", auth.RoleClient)
	if err != nil {
		t.Fatal(err)
	}
	adminToken, err := jwtManager.GenerateToken("ops", auth.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		wantCode int
	}{
		{"enhance without token", http.MethodPost, "/api/v1/ml/enhance", "", http.StatusUnauthorized},
		{"enhance with bad token", http.MethodPost, "/api/v1/ml/enhance", "not-a-jwt", http.StatusUnauthorized},
		{"enhance as client", http.MethodPost, "/api/v1/ml/enhance", clientToken, http.StatusOK},
		{"train as client", http.MethodPost, "/api/v1/ml/train", clientToken, http.StatusForbidden},
		{"train as admin", http.MethodPost, "/api/v1/ml/train", adminToken, http.StatusOK},
		{"reload as client", http.MethodPost, "/api/v1/ml/reload", clientToken, http.StatusForbidden},
		{"health needs no token", http.MethodGet, "/api/v1/health/live", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.reloadOK = true
			w, resp := do(t, h, tt.method, tt.path, "", tt.token)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantCode, w.Body.String())
			}
			switch tt.wantCode {
			case http.StatusUnauthorized:
				if resp.Error == nil || resp.Error.Code != models.ErrCodeAuthentication {
					t.Errorf("error = %+v", resp.Error)
				}
			case http.StatusForbidden:
				if resp.Error == nil || resp.Error.Code != models.ErrCodeForbidden {
					t.Errorf("error = %+v", resp.Error)
				}
			}
		})
	}
}

func TestTrainRateLimit(t *testing.T) {
	svc := &mockService{}
	h, _ := newTestServer(t, svc, auth.ModeNone)

	var last int
	for i := 0; i <= RateLimitTrainConfig.Requests; i++ {
		w, _ := do(t, h, http.MethodPost, "/api/v1/ml/train", "", "")
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("final status = %d, want 429", last)
	}
	if svc.trainCalls != RateLimitTrainConfig.Requests {
		t.Errorf("trainCalls = %d, want %d", svc.trainCalls, RateLimitTrainConfig.Requests)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestServer(t, &mockService{}, auth.ModeNone)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestPredict(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"scores pair", `{"user":{"_id":"user1"},"career_id":"career7"}`, http.StatusOK, ""},
		{"missing career", `{"user":{"_id":"user1"}}`, http.StatusBadRequest, models.ErrCodeValidation},
		{"invalid json", `{"user":`, http.StatusBadRequest, models.ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			h, _ := newTestServer(t, svc, auth.ModeNone)

			w, resp := do(t, h, http.MethodPost, "/api/v1/ml/predict", tt.body, "")
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantCode != "" {
				if resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Errorf("error = %+v, want code %s", resp.Error, tt.wantCode)
				}
				return
			}
			if svc.lastUser != "user1" || svc.lastCareer != "career7" {
				t.Errorf("service saw user=%q career=%q", svc.lastUser, svc.lastCareer)
			}
			if !strings.Contains(w.Body.String(), `"collaborative_rating":0.42`) {
				t.Errorf("body = %s", w.Body.String())
			}
		})
	}
}

func TestModelInfo(t *testing.T) {
	tests := []struct {
		name       string
		infoErr    string
		wantStatus int
	}{
		{"lists artifacts", "", http.StatusOK},
		{"store failure", "read model directory: permission denied", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestServer(t, &mockService{infoErr: tt.infoErr}, auth.ModeNone)

			w, resp := do(t, h, http.MethodGet, "/api/v1/ml/models", "", "")
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.infoErr != "" {
				if resp.Error == nil || resp.Error.Message != tt.infoErr {
					t.Errorf("error = %+v", resp.Error)
				}
				return
			}
			body := w.Body.String()
			for _, want := range []string{`"name":"collaborative_filtering"`, `"collaborative_filtering":"snap-1"`, `"requests":7`} {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %s: %s", want, body)
				}
			}
		})
	}
}
