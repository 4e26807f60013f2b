// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package academic

import (
	"fmt"
	"sort"
	"strings"
)

// SelectionPolicy decides which trained regressor serves predictions.
type SelectionPolicy int

const (
	// PolicyFixedPreference serves random_forest when present, otherwise the
	// first regressor by name.
	PolicyFixedPreference SelectionPolicy = iota

	// PolicyBestByScore serves the regressor with the highest holdout R².
	// Ties go to the lexically first name.
	PolicyBestByScore
)

// String returns the configuration name of the policy.
func (p SelectionPolicy) String() string {
	switch p {
	case PolicyBestByScore:
		return "best-by-score"
	default:
		return "fixed-preference"
	}
}

// ParseSelectionPolicy parses a configuration value. Empty selects the default.
func ParseSelectionPolicy(s string) (SelectionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fixed-preference", "fixed_preference", "fixed":
		return PolicyFixedPreference, nil
	case "best-by-score", "best_by_score", "best":
		return PolicyBestByScore, nil
	default:
		return PolicyFixedPreference, fmt.Errorf("unknown selection policy %q", s)
	}
}

// Select returns the name of the regressor to serve from the candidates
// present in scores, or "" when there are none.
func (p SelectionPolicy) Select(scores map[string]float64) string {
	if len(scores) == 0 {
		return ""
	}
	names := make([]string, 0, len(scores))
	for n := range scores {
		names = append(names, n)
	}
	sort.Strings(names)

	if p == PolicyBestByScore {
		best := names[0]
		for _, n := range names[1:] {
			if scores[n] > scores[best] {
				best = n
			}
		}
		return best
	}

	if _, ok := scores[RandomForestName]; ok {
		return RandomForestName
	}
	return names[0]
}
