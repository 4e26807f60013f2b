// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package supervisor runs serve mode under a suture v4 supervisor tree.

	root ("careerml")
	├── model-layer
	│   ├── TrainingService      (cron schedule, optional train on startup)
	│   ├── ReloadService        (NATS reload subject and SIGHUP)
	│   └── ConfigWatchService   (log level from the config file)
	└── api-layer
	    └── HTTPServerService

Supervisor events are logged through sutureslog, which writes to the zerolog
logger via logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddModelService(services.NewTrainingService(svc, cfg.Training, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))
	return tree.Serve(ctx)

The service wrappers live in the services subpackage.
*/
package supervisor
