// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package services

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/service"
)

var _ suture.Service = (*TrainingService)(nil)

type fakeTrainer struct {
	calls   atomic.Int32
	fail    bool
	lastCmd atomic.Value
}

func (f *fakeTrainer) TrainModels(ctx context.Context) *service.TrainResult {
	f.calls.Add(1)
	f.lastCmd.Store(logging.CommandFromContext(ctx))
	if f.fail {
		return &service.TrainResult{Success: false, Error: "boom"}
	}
	return &service.TrainResult{Success: true, Message: service.MessageTrained}
}

func nopLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestNewTrainingServiceSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
		wantCron bool
	}{
		{"disabled", "", false, false},
		{"five field", "0 3 * * *", false, true},
		{"descriptor", "@daily", false, true},
		{"invalid", "every day", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewTrainingService(&fakeTrainer{}, config.TrainingConfig{Schedule: tt.schedule}, nopLogger())
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if (svc.schedule != nil) != tt.wantCron {
				t.Errorf("schedule set = %v, want %v", svc.schedule != nil, tt.wantCron)
			}
		})
	}
}

func TestTrainingServiceOnStartup(t *testing.T) {
	for _, fail := range []bool{false, true} {
		trainer := &fakeTrainer{fail: fail}
		svc, err := NewTrainingService(trainer, config.TrainingConfig{OnStartup: true}, nopLogger())
		if err != nil {
			t.Fatal(err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		err = svc.Serve(ctx)
		cancel()

		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Serve() = %v", err)
		}
		if trainer.calls.Load() != 1 || svc.Runs() != 1 {
			t.Errorf("fail=%v: calls = %d runs = %d, want 1", fail, trainer.calls.Load(), svc.Runs())
		}
		if cmd, _ := trainer.lastCmd.Load().(string); cmd != "train_models" {
			t.Errorf("command in context = %q", cmd)
		}
	}
}

func TestTrainingServiceWithoutScheduleIdles(t *testing.T) {
	trainer := &fakeTrainer{}
	svc, _ := NewTrainingService(trainer, config.TrainingConfig{}, nopLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v", err)
	}
	if trainer.calls.Load() != 0 {
		t.Errorf("calls = %d, want 0", trainer.calls.Load())
	}
}

func TestTrainingServiceRunsOnSchedule(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a cron tick")
	}

	trainer := &fakeTrainer{}
	svc, err := NewTrainingService(trainer, config.TrainingConfig{Schedule: "@every 1s"}, nopLogger())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()
	_ = svc.Serve(ctx) //nolint:errcheck

	if trainer.calls.Load() < 1 {
		t.Error("scheduled training never ran")
	}
}
