// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package models

// Career is a career catalogue entry.
type Career struct {
	ID          ID       `json:"_id" bson:"_id"`
	Title       string   `json:"title" bson:"title"`
	Category    string   `json:"category,omitempty" bson:"category,omitempty"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	KeySubjects []string `json:"keySubjects,omitempty" bson:"keySubjects,omitempty"`
}

// DefaultCareerTitle is used in suggestions when a career has no title.
const DefaultCareerTitle = "this career"

// TitleOrDefault returns the career title or DefaultCareerTitle.
func (c *Career) TitleOrDefault() string {
	if c == nil || c.Title == "" {
		return DefaultCareerTitle
	}
	return c.Title
}
