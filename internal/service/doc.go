// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package service implements the careerml commands on top of the
// collaborative engine, the academic predictor and the blender.
//
// Every command returns a result struct that is marshaled as-is by the CLI
// and wrapped in an APIResponse envelope by the HTTP API:
//
//	svc, err := service.New(ctx, cfg)
//	res := svc.TrainModels(ctx)
//
// TrainModels falls back to built-in bootstrap data when the data source is
// unreachable or empty, so a fresh deployment always has a collaborative
// model to serve.
package service
