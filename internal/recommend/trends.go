// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"sort"

	"github.com/tomtom215/careerpath/internal/models"
)

const (
	// TrendLimit is the number of careers PredictTrends returns.
	TrendLimit = 10

	// TrendThreshold is the count above which a career is "increasing".
	TrendThreshold = 5
)

// PredictTrends ranks careers by how often they appear in the historical
// records. Ties keep first-appearance order. Entries without a career are
// counted under the empty id.
func PredictTrends(history []models.RecommendationRecord) []Trend {
	counts := make(map[string]int)
	var order []string

	for i := range history {
		for _, entry := range history[i].Recommendations {
			id := entry.Career.String()
			if _, seen := counts[id]; !seen {
				order = append(order, id)
			}
			counts[id]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > TrendLimit {
		order = order[:TrendLimit]
	}

	trends := make([]Trend, 0, len(order))
	for _, id := range order {
		prediction := TrendStable
		if counts[id] > TrendThreshold {
			prediction = TrendIncreasing
		}
		trends = append(trends, Trend{
			CareerID:   id,
			TrendScore: counts[id],
			Prediction: prediction,
		})
	}
	return trends
}
