// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package models

import (
	"fmt"

	"github.com/goccy/go-json"
)

// RecordEntry is one career recommendation inside a historical record.
type RecordEntry struct {
	Career ID       `json:"career" bson:"career"`
	Match  *float64 `json:"match,omitempty" bson:"match,omitempty"`
}

// MatchOr returns the match score, or def when the entry carries none.
func (e RecordEntry) MatchOr(def float64) float64 {
	if e.Match == nil {
		return def
	}
	return *e.Match
}

// RecommendationRecord is a historical recommendation document: the exam
// results a user submitted and the careers recommended to them.
type RecommendationRecord struct {
	ID              ID            `json:"_id,omitempty" bson:"_id,omitempty"`
	User            ID            `json:"user" bson:"user"`
	KCSEResults     *KCSEResults  `json:"kcseResults,omitempty" bson:"kcseResults,omitempty"`
	Recommendations []RecordEntry `json:"recommendations" bson:"recommendations"`
}

// UnknownCareerTitle is used when a candidate carries no title.
const UnknownCareerTitle = "Unknown Career"

// Candidate is an upstream recommendation entry awaiting ML enhancement.
//
// Only id, title, match and keySubjects are interpreted. Every field present
// in the decoded document is retained and re-emitted verbatim.
type Candidate struct {
	ID          ID
	Title       string
	Match       float64
	KeySubjects []string

	raw map[string]json.RawMessage
}

// UnmarshalJSON decodes a candidate and keeps its original fields.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode candidate: %w", err)
	}

	var out Candidate
	if v, ok := raw["id"]; ok {
		if err := out.ID.UnmarshalJSON(v); err != nil {
			return fmt.Errorf("decode candidate id: %w", err)
		}
	}
	if v, ok := raw["title"]; ok {
		// Non-string titles are ignored rather than rejected.
		_ = json.Unmarshal(v, &out.Title) //nolint:errcheck
	}
	if v, ok := raw["match"]; ok && string(v) != "null" {
		if err := json.Unmarshal(v, &out.Match); err != nil {
			return fmt.Errorf("decode candidate match: %w", err)
		}
	}
	if v, ok := raw["keySubjects"]; ok && string(v) != "null" {
		if err := json.Unmarshal(v, &out.KeySubjects); err != nil {
			return fmt.Errorf("decode candidate keySubjects: %w", err)
		}
	}

	out.raw = raw
	*c = out
	return nil
}

// MarshalJSON re-emits the fields the candidate was decoded from, or the
// interpreted fields for candidates built in code.
//
//nolint:gocritic // value receiver keeps Candidate usable as a map/slice value
func (c Candidate) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.fields())
}

// TitleOrUnknown returns the title, or UnknownCareerTitle when empty.
func (c *Candidate) TitleOrUnknown() string {
	if c.Title == "" {
		return UnknownCareerTitle
	}
	return c.Title
}

// AsCareer returns the career view used for improvement suggestions.
func (c *Candidate) AsCareer() Career {
	return Career{
		ID:          c.ID,
		Title:       c.TitleOrUnknown(),
		KeySubjects: c.KeySubjects,
	}
}

func (c *Candidate) fields() map[string]json.RawMessage {
	if c.raw != nil {
		out := make(map[string]json.RawMessage, len(c.raw)+3)
		for k, v := range c.raw {
			out[k] = v
		}
		return out
	}

	out := make(map[string]json.RawMessage, 7)
	put(out, "id", c.ID)
	put(out, "title", c.Title)
	put(out, "match", c.Match)
	if c.KeySubjects != nil {
		put(out, "keySubjects", c.KeySubjects)
	}
	return out
}

// EnhancedRecommendation is a candidate annotated with ML output.
type EnhancedRecommendation struct {
	Candidate

	MLEnhancedScore        float64
	ImprovementSuggestions []string
	MLReasons              []string

	annotated bool
}

// Enhance wraps a candidate with its ML annotations.
func Enhance(c Candidate, score float64, suggestions, reasons []string) EnhancedRecommendation {
	if suggestions == nil {
		suggestions = []string{}
	}
	if reasons == nil {
		reasons = []string{}
	}
	return EnhancedRecommendation{
		Candidate:              c,
		MLEnhancedScore:        score,
		ImprovementSuggestions: suggestions,
		MLReasons:              reasons,
		annotated:              true,
	}
}

// Passthrough wraps a candidate without annotations. It marshals exactly as
// the candidate did.
func Passthrough(c Candidate) EnhancedRecommendation {
	return EnhancedRecommendation{Candidate: c, MLEnhancedScore: c.Match}
}

// Annotated reports whether ML fields are attached.
func (r *EnhancedRecommendation) Annotated() bool {
	return r.annotated
}

// MarshalJSON emits the candidate fields plus ml_enhanced_score,
// improvement_suggestions and ml_reasons when annotated.
//
//nolint:gocritic // value receiver keeps slices of EnhancedRecommendation marshalable
func (r EnhancedRecommendation) MarshalJSON() ([]byte, error) {
	out := r.Candidate.fields()
	if r.annotated {
		put(out, "ml_enhanced_score", r.MLEnhancedScore)
		put(out, "improvement_suggestions", r.ImprovementSuggestions)
		put(out, "ml_reasons", r.MLReasons)
	}
	return json.Marshal(out)
}

// put stores v in m. Values here are plain strings, numbers and slices, so
// marshaling cannot fail.
func put(m map[string]json.RawMessage, key string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	m[key] = b
}
