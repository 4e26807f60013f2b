// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

/*
Package models defines the data structures shared across Careerpath.

The shapes mirror the documents stored by the career recommender backend:

  - User: the student profile passed to enhance_recommendations (only _id and
    kcseResults are consumed)
  - KCSEResults / SubjectGrade: exam results on the 12-point KCSE scale
  - Career: career catalogue entries with their key subjects
  - RecommendationRecord / RecordEntry: historical recommendation documents used
    for training and trend analysis
  - Candidate / EnhancedRecommendation: the candidate list produced upstream and
    the ML-annotated list returned to callers

Candidate keeps every field it was decoded from so that enhanced output passes
upstream fields through untouched.

Identifiers arrive as strings, numbers or extended-JSON ObjectIds depending on
the producer; ID normalizes all of them to their string form.
*/
package models
