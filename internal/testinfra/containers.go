// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DefaultStartTimeout bounds container startup.
const DefaultStartTimeout = 60 * time.Second

// SkipIfNoDocker skips the test when the Docker daemon is unreachable.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if !IsDockerAvailable() {
		t.Skip("Skipping test: Docker not available")
	}
}

// IsDockerAvailable checks if Docker daemon is running and accessible.
func IsDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "docker", "info")
	return cmd.Run() == nil
}

// CleanupContainer terminates container and logs failures.
func CleanupContainer(t *testing.T, ctx context.Context, container testcontainers.Container) {
	t.Helper()

	if container != nil {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	}
}

// service describes a single-port container.
type service struct {
	image   string
	port    nat.Port
	env     map[string]string
	cmd     []string
	waitLog string
	timeout time.Duration
}

// startService starts s and returns the container with its host:port.
func startService(ctx context.Context, s service) (testcontainers.Container, string, error) {
	if s.timeout <= 0 {
		s.timeout = DefaultStartTimeout
	}

	strategies := []wait.Strategy{wait.ForListeningPort(s.port)}
	if s.waitLog != "" {
		strategies = append(strategies, wait.ForLog(s.waitLog))
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        s.image,
			ExposedPorts: []string{string(s.port)},
			Env:          s.env,
			Cmd:          s.cmd,
			WaitingFor:   wait.ForAll(strategies...).WithStartupTimeout(s.timeout),
		},
		Started: true,
	})
	if err != nil {
		return nil, "", fmt.Errorf("create %s container: %w", s.image, err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, "", fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, s.port)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, "", fmt.Errorf("get mapped port: %w", err)
	}

	return container, fmt.Sprintf("%s:%s", host, port.Port()), nil
}
