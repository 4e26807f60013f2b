// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package collab

import (
	"context"
	"math"
	"sort"

	"github.com/tomtom215/careerpath/internal/recommend"
)

// Neighbours is the number of similar users consulted by RecommendFor.
const Neighbours = 5

// ranked orders indices of row by descending score, excluding skip. Equal
// scores keep index order.
func ranked(row []float64, skip int) []rankedIndex {
	out := make([]rankedIndex, 0, len(row))
	for i, v := range row {
		if i != skip {
			out = append(out, rankedIndex{index: i, score: v})
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].score > out[b].score })
	return out
}

// RecommendFor returns up to n careers the user has not rated, scored by the
// similarity-weighted ratings of the user's nearest neighbours. Unknown
// users and an untrained user similarity yield an empty list.
func (e *Engine) RecommendFor(ctx context.Context, userID string, n int) ([]recommend.CareerScore, error) {
	out := []recommend.CareerScore{}

	s := e.current(ctx)
	if s == nil || s.UserSimilarity == nil || n <= 0 {
		return out, nil
	}
	u, ok := s.Users.Index(userID)
	if !ok {
		return out, nil
	}

	own := s.Ratings.RawRowView(u)
	neighbours := ranked(s.UserSimilarity.RawRowView(u), u)
	if len(neighbours) > Neighbours {
		neighbours = neighbours[:Neighbours]
	}

	scores := make(map[int]float64)
	var order []int
	for _, nb := range neighbours {
		for c, rating := range s.Ratings.RawRowView(nb.index) {
			if rating <= 0 || own[c] != 0 {
				continue
			}
			if _, seen := scores[c]; !seen {
				order = append(order, c)
			}
			scores[c] += nb.score * rating
		}
	}

	candidates := make([]rankedIndex, len(order))
	for i, c := range order {
		candidates[i] = rankedIndex{index: c, score: scores[c]}
	}
	sort.SliceStable(candidates, func(a, b int) bool { return candidates[a].score > candidates[b].score })

	for _, c := range candidates {
		if len(out) == n {
			break
		}
		out = append(out, recommend.CareerScore{
			CareerID:        s.Careers.ID(c.index),
			MLEnhancedScore: math.Min(1, c.score),
			Confidence:      math.Min(100, c.score*100),
		})
	}
	return out, nil
}

// SimilarCareersOf returns up to n careers most similar to careerID,
// excluding itself. It is empty when item similarity has not been trained or
// the career is unknown.
func (e *Engine) SimilarCareersOf(ctx context.Context, careerID string, n int) []recommend.SimilarCareer {
	out := []recommend.SimilarCareer{}

	s := e.current(ctx)
	if s == nil || s.ItemSimilarity == nil || n <= 0 {
		return out
	}
	c, ok := s.Careers.Index(careerID)
	if !ok {
		return out
	}

	for _, r := range ranked(s.ItemSimilarity.RawRowView(c), c) {
		if len(out) == n {
			break
		}
		out = append(out, recommend.SimilarCareer{
			CareerID:        s.Careers.ID(r.index),
			SimilarityScore: r.score,
		})
	}
	return out
}

// PredictRating reconstructs the rating of (user, career) from the factor
// model. It reports false when factors are untrained or either id is unknown.
func (e *Engine) PredictRating(ctx context.Context, userID, careerID string) (float64, bool) {
	s := e.current(ctx)
	if s == nil || s.W == nil || s.H == nil {
		return 0, false
	}
	u, ok := s.Users.Index(userID)
	if !ok {
		return 0, false
	}
	c, ok := s.Careers.Index(careerID)
	if !ok {
		return 0, false
	}

	_, k := s.W.Dims()
	var v float64
	for f := 0; f < k; f++ {
		v += s.W.At(u, f) * s.H.At(f, c)
	}
	return v, true
}

var _ recommend.CollaborativeModel = (*Engine)(nil)
