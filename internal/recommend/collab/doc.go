// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package collab implements user-based and item-based collaborative filtering
over historical career recommendations.

# Model

Every historical recommendation entry is an interaction (user, career,
match/100). Interactions fill a dense users × careers rating matrix. Users are
indexed in sorted id order and careers in catalogue order. From the matrix
the engine derives:

  - a user-user cosine similarity matrix, used by RecommendFor
  - a career-career cosine similarity matrix, used by SimilarCareersOf
  - a non-negative factorization W·H, used by PredictRating

# Concurrency

All trained state lives in an immutable Snapshot behind an atomic pointer.
Each training step copies the current snapshot, fills in the new piece and
swaps the copy in, so readers always see a consistent set of matrices. Every
swap assigns a new snapshot ID, which callers use as a cache key.
*/
package collab
