// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// getCounterValue extracts the value from a Prometheus counter
func getCounterValue(counter prometheus.Counter) float64 {
	var m io_prometheus_client.Metric
	if err := counter.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// getGaugeValue extracts the value from a Prometheus gauge
func getGaugeValue(gauge prometheus.Gauge) float64 {
	var m io_prometheus_client.Metric
	if err := gauge.Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}

func TestRecordTraining(t *testing.T) {
	tests := []struct {
		name    string
		engine  string
		samples int
		err     error
		outcome string
	}{
		{"academic success", EngineAcademic, 120, nil, OutcomeSuccess},
		{"collaborative failure", EngineCollaborative, 0, errors.New("no data"), OutcomeFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := TrainingRuns.WithLabelValues(tt.engine, tt.outcome)
			before := getCounterValue(counter)

			RecordTraining(tt.engine, 250*time.Millisecond, tt.samples, tt.err)

			if got := getCounterValue(counter); got != before+1 {
				t.Errorf("training runs = %v, want %v", got, before+1)
			}
			if tt.err == nil {
				if got := getGaugeValue(TrainingSamples.WithLabelValues(tt.engine)); got != float64(tt.samples) {
					t.Errorf("training samples = %v, want %d", got, tt.samples)
				}
			}
		})
	}
}

func TestRecordRegressorScores(t *testing.T) {
	RecordRegressorScores(map[string]float64{"random_forest": 0.82, "linear_regression": -0.1})

	if got := getGaugeValue(RegressorR2.WithLabelValues("random_forest")); got != 0.82 {
		t.Errorf("random_forest r2 = %v, want 0.82", got)
	}
	if got := getGaugeValue(RegressorR2.WithLabelValues("linear_regression")); got != -0.1 {
		t.Errorf("linear_regression r2 = %v, want -0.1", got)
	}
}

func TestRecordModelLoad(t *testing.T) {
	RecordModelLoad(EngineAcademic, OutcomeSuccess, 7)
	if got := getGaugeValue(ModelVersion.WithLabelValues(EngineAcademic)); got != 7 {
		t.Errorf("model version = %v, want 7", got)
	}

	// A failed load must not move the served version.
	RecordModelLoad(EngineAcademic, OutcomeFailure, 99)
	if got := getGaugeValue(ModelVersion.WithLabelValues(EngineAcademic)); got != 7 {
		t.Errorf("model version after failure = %v, want 7", got)
	}
}

func TestRecordBlend(t *testing.T) {
	success := BlendRequests.WithLabelValues(OutcomeSuccess)
	fallback := BlendRequests.WithLabelValues(OutcomeFallback)
	beforeSuccess := getCounterValue(success)
	beforeFallback := getCounterValue(fallback)

	RecordBlend(false, time.Millisecond)
	RecordBlend(true, time.Millisecond)
	RecordBlend(true, time.Millisecond)

	if got := getCounterValue(success) - beforeSuccess; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := getCounterValue(fallback) - beforeFallback; got != 2 {
		t.Errorf("fallback delta = %v, want 2", got)
	}
}

func TestRecordCFCache(t *testing.T) {
	hits := getCounterValue(CFCacheHits)
	misses := getCounterValue(CFCacheMisses)

	RecordCFCache(true)
	RecordCFCache(false)
	RecordCFCache(false)

	if got := getCounterValue(CFCacheHits) - hits; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := getCounterValue(CFCacheMisses) - misses; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestRecordBreakerTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     float64
	}{
		{"closed", "open", 2},
		{"open", "half-open", 1},
		{"half-open", "closed", 0},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			RecordBreakerTransition("mongo", tt.from, tt.to)
			if got := getGaugeValue(BreakerState.WithLabelValues("mongo")); got != tt.want {
				t.Errorf("breaker state = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	counter := HTTPRequests.WithLabelValues("POST", "/api/v1/ml/enhance", "200")
	before := getCounterValue(counter)

	RecordAPIRequest("POST", "/api/v1/ml/enhance", 200, 15*time.Millisecond)

	if got := getCounterValue(counter); got != before+1 {
		t.Errorf("http requests = %v, want %v", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := getGaugeValue(HTTPActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	if got := getGaugeValue(HTTPActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
}

func TestWriteToTextfile(t *testing.T) {
	t.Run("empty path is a no-op", func(t *testing.T) {
		if err := WriteToTextfile(""); err != nil {
			t.Fatalf("WriteToTextfile(\"\") error = %v", err)
		}
	})

	t.Run("writes registered metrics", func(t *testing.T) {
		RecordBlend(false, time.Millisecond)
		path := filepath.Join(t.TempDir(), "careerml.prom")

		if err := WriteToTextfile(path); err != nil {
			t.Fatalf("WriteToTextfile() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read textfile: %v", err)
		}
		if !strings.Contains(string(data), "careerml_blend_requests_total") {
			t.Errorf("textfile missing careerml_blend_requests_total:\n%s", data)
		}
	})
}
