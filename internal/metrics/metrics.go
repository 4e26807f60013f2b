// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engine label values.
const (
	EngineAcademic      = "academic"
	EngineCollaborative = "collaborative"
)

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeFallback = "fallback"
	OutcomeMissing  = "missing"
)

var (
	// Training Metrics
	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerml_training_runs_total",
			Help: "Total number of model training runs",
		},
		[]string{"engine", "outcome"},
	)

	TrainingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "careerml_training_duration_seconds",
			Help:    "Duration of model training runs in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300},
		},
		[]string{"engine"},
	)

	TrainingSamples = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "careerml_training_samples",
			Help: "Number of samples used by the last training run",
		},
		[]string{"engine"},
	)

	RegressorR2 = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "careerml_regressor_r2",
			Help: "Held-out R2 score of each academic regressor from the last training run",
		},
		[]string{"model"},
	)

	// Model Artifact Metrics
	ModelLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerml_model_loads_total",
			Help: "Total number of model artifact loads",
		},
		[]string{"engine", "outcome"}, // success, failure, missing
	)

	ModelVersion = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "careerml_model_version",
			Help: "Version of the model artifact currently served",
		},
		[]string{"engine"},
	)

	// Serving Metrics
	BlendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerml_blend_requests_total",
			Help: "Total number of recommendation enhancement requests",
		},
		[]string{"outcome"}, // success, fallback
	)

	BlendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "careerml_blend_duration_seconds",
			Help:    "Duration of recommendation enhancement in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)

	CFCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "careerml_cf_cache_hits_total",
			Help: "Total number of collaborative lookups served from cache",
		},
	)

	CFCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "careerml_cf_cache_misses_total",
			Help: "Total number of collaborative lookups computed from the model",
		},
	)

	// Circuit Breaker Metrics
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "careerml_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	BreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerml_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Reload Metrics
	ReloadSignals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerml_reload_signals_total",
			Help: "Model reload signals received in serve mode",
		},
		[]string{"source", "outcome"}, // source: nats, sighup, manual; outcome: reloaded, failed, dropped
	)

	BreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerml_breaker_requests_total",
			Help: "Requests through a circuit breaker by result (success, failure, rejected)",
		},
		[]string{"name", "result"},
	)

	// Data Source Metrics
	SourceQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "careerml_source_query_duration_seconds",
			Help:    "Duration of recommendation data source queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "collection"},
	)

	SourceQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerml_source_query_errors_total",
			Help: "Total number of failed data source queries",
		},
		[]string{"backend", "collection"},
	)

	// HTTP Metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerml_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "careerml_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "careerml_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	HTTPRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerml_http_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// Application Info
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "careerml_app_info",
			Help: "Application build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "careerml_app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordTraining records the outcome and duration of one engine training run.
func RecordTraining(engine string, duration time.Duration, samples int, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	TrainingRuns.WithLabelValues(engine, outcome).Inc()
	TrainingDuration.WithLabelValues(engine).Observe(duration.Seconds())
	if err == nil {
		TrainingSamples.WithLabelValues(engine).Set(float64(samples))
	}
}

// RecordRegressorScores publishes the held-out R2 score of every regressor.
func RecordRegressorScores(scores map[string]float64) {
	for model, score := range scores {
		RegressorR2.WithLabelValues(model).Set(score)
	}
}

// RecordModelLoad records an artifact load attempt. A successful load also
// updates the served version gauge.
func RecordModelLoad(engine, outcome string, version int) {
	ModelLoads.WithLabelValues(engine, outcome).Inc()
	if outcome == OutcomeSuccess {
		ModelVersion.WithLabelValues(engine).Set(float64(version))
	}
}

// RecordBlend records one enhancement request.
func RecordBlend(fallback bool, duration time.Duration) {
	outcome := OutcomeSuccess
	if fallback {
		outcome = OutcomeFallback
	}
	BlendRequests.WithLabelValues(outcome).Inc()
	BlendDuration.Observe(duration.Seconds())
}

// RecordCFCache records a collaborative cache lookup.
func RecordCFCache(hit bool) {
	if hit {
		CFCacheHits.Inc()
	} else {
		CFCacheMisses.Inc()
	}
}

// RecordBreakerTransition updates the breaker state gauge and transition counter.
// States are given as the breaker's String() form.
func RecordBreakerTransition(name, from, to string) {
	BreakerTransitions.WithLabelValues(name, from, to).Inc()
	BreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

// RecordBreakerRequest counts one call through a breaker.
func RecordBreakerRequest(name, result string) {
	BreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordReloadSignal counts one reload signal and what became of it.
func RecordReloadSignal(source, outcome string) {
	ReloadSignals.WithLabelValues(source, outcome).Inc()
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}

// RecordSourceQuery records a data source query.
func RecordSourceQuery(backend, collection string, duration time.Duration, err error) {
	SourceQueryDuration.WithLabelValues(backend, collection).Observe(duration.Seconds())
	if err != nil {
		SourceQueryErrors.WithLabelValues(backend, collection).Inc()
	}
}

// RecordAPIRequest records an HTTP request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	HTTPRateLimitHits.WithLabelValues(endpoint).Inc()
}

// SetAppInfo publishes build information.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// UpdateUptime sets the uptime gauge from the process start time.
func UpdateUptime(start time.Time) {
	AppUptime.Set(time.Since(start).Seconds())
}

// WriteToTextfile writes every registered metric to path in the node_exporter
// textfile format. CLI invocations use it since they exit before any scrape.
func WriteToTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
