// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package academic

import (
	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend/features"
)

// DefaultTargetMatch is the target used for a historical entry without a
// match score.
const DefaultTargetMatch = 50.0

// SamplesFrom builds one training sample per recommended career in every
// record that carries exam results with a subjects list.
func SamplesFrom(records []models.RecommendationRecord) []Sample {
	var samples []Sample
	for i := range records {
		r := &records[i]
		if r.KCSEResults == nil || r.KCSEResults.Subjects == nil {
			continue
		}
		x := features.Extract(r.KCSEResults)
		for _, e := range r.Recommendations {
			samples = append(samples, Sample{
				Features: x.Slice(),
				Target:   e.MatchOr(DefaultTargetMatch),
			})
		}
	}
	return samples
}
