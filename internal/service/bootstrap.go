// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package service

import "github.com/tomtom215/careerpath/internal/models"

// BootstrapRecords is the built-in interaction history used when the data
// source is unavailable or empty.
func BootstrapRecords() []models.RecommendationRecord {
	match := func(f float64) *float64 { return &f }
	return []models.RecommendationRecord{
		{
			User: "user1",
			Recommendations: []models.RecordEntry{
				{Career: "career1", Match: match(85)},
				{Career: "career2", Match: match(75)},
			},
		},
		{
			User: "user2",
			Recommendations: []models.RecordEntry{
				{Career: "career1", Match: match(90)},
				{Career: "career3", Match: match(80)},
			},
		},
	}
}

// BootstrapCareers is the built-in career catalogue paired with
// BootstrapRecords.
func BootstrapCareers() []models.Career {
	return []models.Career{
		{
			ID:          "career1",
			Title:       "Software Engineer",
			Category:    "Technology",
			Description: "Develop software applications",
			KeySubjects: []string{"Mathematics", "Computer Studies"},
		},
		{
			ID:          "career2",
			Title:       "Doctor",
			Category:    "Healthcare",
			Description: "Provide medical care",
			KeySubjects: []string{"Biology", "Chemistry", "Physics"},
		},
		{
			ID:          "career3",
			Title:       "Teacher",
			Category:    "Education",
			Description: "Educate students",
			KeySubjects: []string{"English", "Mathematics"},
		},
	}
}
