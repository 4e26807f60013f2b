// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"fmt"
	"testing"

	"github.com/tomtom215/careerpath/internal/models"
)

func record(careers ...string) models.RecommendationRecord {
	entries := make([]models.RecordEntry, len(careers))
	for i, c := range careers {
		entries[i] = models.RecordEntry{Career: models.ID(c)}
	}
	return models.RecommendationRecord{User: "u", Recommendations: entries}
}

func TestPredictTrends(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		if got := PredictTrends(nil); len(got) != 0 {
			t.Errorf("PredictTrends(nil) = %v, want empty", got)
		}
	})

	t.Run("ranks by count with first appearance ties", func(t *testing.T) {
		history := []models.RecommendationRecord{
			record("b", "a"),
			record("a", "c"),
			record("c"),
		}
		got := PredictTrends(history)

		want := []Trend{
			{CareerID: "a", TrendScore: 2, Prediction: TrendStable},
			{CareerID: "c", TrendScore: 2, Prediction: TrendStable},
			{CareerID: "b", TrendScore: 1, Prediction: TrendStable},
		}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("trend[%d] = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("increasing above threshold", func(t *testing.T) {
		var history []models.RecommendationRecord
		for i := 0; i < 6; i++ {
			history = append(history, record("hot"))
		}
		for i := 0; i < 5; i++ {
			history = append(history, record("warm"))
		}
		got := PredictTrends(history)

		if got[0].CareerID != "hot" || got[0].Prediction != TrendIncreasing {
			t.Errorf("trend[0] = %+v, want hot increasing", got[0])
		}
		if got[1].CareerID != "warm" || got[1].Prediction != TrendStable {
			t.Errorf("trend[1] = %+v, want warm stable", got[1])
		}
	})

	t.Run("keeps top ten", func(t *testing.T) {
		var careers []string
		for i := 0; i < 15; i++ {
			careers = append(careers, fmt.Sprintf("career%d", i))
		}
		got := PredictTrends([]models.RecommendationRecord{record(careers...)})
		if len(got) != TrendLimit {
			t.Fatalf("len = %d, want %d", len(got), TrendLimit)
		}
		if got[9].CareerID != "career9" {
			t.Errorf("trend[9] = %s, want career9", got[9].CareerID)
		}
	})

	t.Run("missing career counted as empty id", func(t *testing.T) {
		got := PredictTrends([]models.RecommendationRecord{record("", "")})
		if len(got) != 1 || got[0].CareerID != "" || got[0].TrendScore != 2 {
			t.Errorf("got %+v, want one empty-id trend with score 2", got)
		}
	})
}
