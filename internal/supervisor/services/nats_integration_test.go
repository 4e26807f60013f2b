// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

//go:build integration

package services

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/careerpath/internal/testinfra"
)

func TestNATSNotifierTriggersReload(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testinfra.NewNATSContainer(ctx)
	if err != nil {
		t.Fatalf("start nats: %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, container.Container)

	trainer, err := ConnectNATS(container.URL, "careerml-trainer")
	if err != nil {
		t.Fatal(err)
	}
	defer trainer.Close()
	server, err := ConnectNATS(container.URL, "careerml-server")
	if err != nil {
		t.Fatal(err)
	}
	defer server.Close()

	const subject = "careerml.models.reload"
	reloader := newFakeReloader(true)
	svc := NewReloadService(reloader, server, ReloadServiceConfig{
		Subject:     subject,
		MinInterval: time.Millisecond,
		Origin:      "server",
	}, nopLogger())

	serveCtx, stop := context.WithCancel(ctx)
	defer stop()
	go svc.Serve(serveCtx) //nolint:errcheck

	// Give the subscription time to reach the server.
	time.Sleep(200 * time.Millisecond)

	if err := NewNATSNotifier(trainer, subject, "trainer").NotifyModelsUpdated(ctx); err != nil {
		t.Fatalf("NotifyModelsUpdated: %v", err)
	}
	if err := trainer.Flush(); err != nil {
		t.Fatal(err)
	}

	if got := reloader.waitCalls(t, 1, 2*time.Second); got != 1 {
		t.Errorf("reloads = %d, want 1", got)
	}
}
