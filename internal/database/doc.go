// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package database provides read access to the historical recommendation data
the models are trained on.

# Backends

Two Source implementations are available, selected by source.driver:

  - mongo: the production recommender database (collections "recommendations"
    and "careers"), via go.mongodb.org/mongo-driver
  - duckdb: an embedded file holding an export of the same collections, used
    for offline training and reproducible experiments

Open wraps either backend in a BreakerSource so a dead database fails fast
with recommend.KindDataUnavailable instead of stalling every training run.

# Usage

	src, err := database.Open(ctx, cfg)
	if err != nil {
	    return err
	}
	defer src.Close()

	records, err := src.Recommendations(ctx)

# Exporting

DuckDBSource.Import replaces the stored tables in one transaction:

	duck, _ := database.NewDuckDBSource(ctx, "training.duckdb")
	err := duck.Import(ctx, records, careers)
*/
package database
