// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package collab

import "github.com/tomtom215/careerpath/internal/models"

// Interaction is one observed (user, career, rating) triple. Rating is the
// historical match score divided by 100.
type Interaction struct {
	UserID   string
	CareerID string
	Rating   float64
}

// Dataset is the input to BuildMatrix.
type Dataset struct {
	// Users lists every user seen, including users whose interactions all
	// name unknown careers.
	Users []string

	// Careers is the career catalogue in index order.
	Careers []string

	Interactions []Interaction
}

// DatasetFrom converts historical recommendation records and the career
// catalogue. Entries without a match score count as 0.
func DatasetFrom(records []models.RecommendationRecord, careers []models.Career) Dataset {
	ds := Dataset{
		Users:   make([]string, 0, len(records)),
		Careers: make([]string, 0, len(careers)),
	}
	for _, c := range careers {
		ds.Careers = append(ds.Careers, c.ID.String())
	}
	for _, r := range records {
		user := r.User.String()
		ds.Users = append(ds.Users, user)
		for _, e := range r.Recommendations {
			ds.Interactions = append(ds.Interactions, Interaction{
				UserID:   user,
				CareerID: e.Career.String(),
				Rating:   e.MatchOr(0) / 100,
			})
		}
	}
	return ds
}
