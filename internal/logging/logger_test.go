// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(Config{}) })
	return &buf
}

func decodeLine(t *testing.T, line string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("log line is not JSON: %v: %q", err, line)
	}
	return m
}

func TestInitWritesJSON(t *testing.T) {
	buf := captureLogs(t)

	Info().Str("k", "v").Msg("hello")

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["message"] != "hello" || m["k"] != "v" || m["level"] != "info" {
		t.Errorf("unexpected log line: %v", m)
	}
}

func TestCtxAddsCorrelationAndCommand(t *testing.T) {
	buf := captureLogs(t)

	ctx := ContextWithCorrelationID(context.Background(), "abc12345")
	ctx = ContextWithCommand(ctx, "train_models")
	Ctx(ctx).Warn().Msg("degraded")

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["correlation_id"] != "abc12345" {
		t.Errorf("correlation_id = %v", m["correlation_id"])
	}
	if m["command"] != "train_models" {
		t.Errorf("command = %v", m["command"])
	}
}

func TestContextAccessorsEmpty(t *testing.T) {
	ctx := context.Background()
	if CorrelationIDFromContext(ctx) != "" || CommandFromContext(ctx) != "" {
		t.Error("expected empty values on a bare context")
	}
	if id := GenerateCorrelationID(); len(id) != 8 {
		t.Errorf("GenerateCorrelationID() length = %d, want 8", len(id))
	}
}

func TestWithComponent(t *testing.T) {
	buf := captureLogs(t)

	l := WithComponent("collab")
	l.Info().Msg("x")

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["component"] != "collab" {
		t.Errorf("component = %v", m["component"])
	}
}

func TestSlogLoggerGroupsAndAttrs(t *testing.T) {
	buf := captureLogs(t)

	l := NewSlogLogger().WithGroup("suture").With("service", "http")
	l.Warn("restarting", "attempt", 2)

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["message"] != "restarting" || m["level"] != "warn" {
		t.Errorf("unexpected line: %v", m)
	}
	if m["suture.service"] != "http" {
		t.Errorf("suture.service = %v", m["suture.service"])
	}
	if m["suture.attempt"] != float64(2) {
		t.Errorf("suture.attempt = %v", m["suture.attempt"])
	}
}

func TestNewTestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewTestLogger(&buf)
	l.Info().Msg("captured")
	if !strings.Contains(buf.String(), "captured") {
		t.Errorf("output = %q", buf.String())
	}
}
