// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package services provides suture.Service wrappers for serve mode.

Each wrapper implements

	type Service interface {
	    Serve(ctx context.Context) error
	}

and returns ctx.Err() on shutdown. Returning any other error makes the
supervisor restart the service with backoff.

# Available Services

HTTPServerService runs the API with graceful shutdown.

TrainingService calls TrainModels on a robfig/cron schedule
(training.schedule) and optionally once at startup. Overlapping runs are
skipped.

ReloadService calls Reload when a message arrives on nats.reload_subject, on
SIGHUP, or on Trigger. Reloads are throttled with a golang.org/x/time/rate
limiter so a burst of signals costs one artifact read.

ConfigWatchService re-applies the log level when the config file changes.

NATSNotifier is not a service: it implements service.Notifier and publishes
ModelsUpdated after a successful training run, so other instances pick up
the new artifacts through their ReloadService.
*/
package services
