// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/cache"
	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/metrics"
	"github.com/tomtom215/careerpath/internal/models"
)

// Explanation strings attached to blended recommendations.
const (
	ReasonCollaborative = "Similar users with comparable academic profiles also showed interest in this career"
	ReasonAcademic      = "Your academic performance pattern suggests strong compatibility with this career"
)

// Signals are the model outputs available for one candidate.
type Signals struct {
	// CF is the collaborative score in [0, 1].
	CF    float64
	HasCF bool

	// AP is the academic match prediction in [0, 100].
	AP    float64
	HasAP bool
}

// Blend combines the original match score with the available signals and
// clamps the result to [0, 100].
func Blend(cfg *BlendConfig, original float64, s Signals) float64 {
	final := original
	if s.HasCF {
		final = (1-cfg.CFWeight)*final + cfg.CFWeight*s.CF*100
	}
	if s.HasAP {
		final = (1-cfg.APWeight)*final + cfg.APWeight*s.AP
	}
	return math.Max(0, math.Min(100, final))
}

// Reasons returns the explanations that apply to a blended candidate.
func Reasons(original float64, s Signals) []string {
	reasons := []string{}
	if s.HasCF {
		reasons = append(reasons, ReasonCollaborative)
	}
	if s.HasAP && s.AP > original {
		reasons = append(reasons, ReasonAcademic)
	}
	return reasons
}

// BlenderStats reports Blender activity since construction.
type BlenderStats struct {
	Requests    int64 `json:"requests"`
	Fallbacks   int64 `json:"fallbacks"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
}

// Blender enhances upstream recommendations with collaborative and academic
// signals. Either model may be nil, in which case its signal is absent.
type Blender struct {
	config *BlendConfig
	cf     CollaborativeModel
	ap     AcademicModel
	cache  cache.Cacher
	logger zerolog.Logger

	requests    atomic.Int64
	fallbacks   atomic.Int64
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
}

// NewBlender creates a Blender. A nil config uses DefaultBlendConfig.
func NewBlender(cfg *BlendConfig, cf CollaborativeModel, ap AcademicModel, logger zerolog.Logger) *Blender {
	if cfg == nil {
		cfg = DefaultBlendConfig()
	}
	return &Blender{
		config: cfg.Clone(),
		cf:     cf,
		ap:     ap,
		logger: logger.With().Str("component", "blender").Logger(),
	}
}

// SetCache enables caching of collaborative lookups. Must be called before
// the Blender serves requests.
func (b *Blender) SetCache(c cache.Cacher) {
	b.cache = c
}

// Config returns a copy of the blend configuration.
func (b *Blender) Config() *BlendConfig {
	return b.config.Clone()
}

// Stats returns activity counters.
func (b *Blender) Stats() BlenderStats {
	return BlenderStats{
		Requests:    b.requests.Load(),
		Fallbacks:   b.fallbacks.Load(),
		CacheHits:   b.cacheHits.Load(),
		CacheMisses: b.cacheMisses.Load(),
	}
}

// Enhance blends every candidate and returns them ranked by final score.
//
// Enhance never fails. If any step errors or panics, the candidates are
// returned untouched in their original order with MLEnhanced=false and the
// cause recorded in Result.Err.
func (b *Blender) Enhance(ctx context.Context, user *models.User, candidates []models.Candidate) (res *Result) {
	start := time.Now()
	b.requests.Add(1)

	log := b.logger.With().
		Str("correlation_id", logging.CorrelationIDFromContext(ctx)).
		Str("user_id", user.UserIDOrUnknown()).
		Int("candidates", len(candidates)).
		Logger()

	defer func() {
		if r := recover(); r != nil {
			res = b.fallback(candidates, fmt.Errorf("blend panic: %v", r))
			log.Error().Err(res.Err).Msg("recommendation enhancement panicked")
		}
		metrics.RecordBlend(!res.MLEnhanced, time.Since(start))
	}()

	res, err := b.enhance(ctx, user, candidates)
	if err != nil {
		log.Error().Err(err).Msg("recommendation enhancement failed, returning original list")
		return b.fallback(candidates, err)
	}

	log.Debug().
		Dur("duration", time.Since(start)).
		Str("snapshot_id", res.SnapshotID).
		Msg("recommendations enhanced")
	return res
}

func (b *Blender) enhance(ctx context.Context, user *models.User, candidates []models.Candidate) (*Result, error) {
	cfScores, snapshotID, err := b.collaborativeScores(ctx, user.UserIDOrUnknown())
	if err != nil {
		return nil, err
	}

	out := make([]models.EnhancedRecommendation, 0, len(candidates))
	for i := range candidates {
		cand := candidates[i]

		var s Signals
		if cf, ok := cfScores[cand.ID.String()]; ok {
			s.CF, s.HasCF = cf, true
		}

		var suggestions []string
		if user.HasExamResults() && b.ap != nil {
			ap, err := b.ap.PredictMatch(ctx, user.KCSEResults, cand.ID.String())
			switch {
			case err == nil:
				s.AP, s.HasAP = ap, true
			case IsKind(err, KindModelNotTrained):
			default:
				return nil, fmt.Errorf("academic prediction for %q: %w", cand.ID, err)
			}
			suggestions = b.ap.ImprovementSuggestions(user.KCSEResults, cand.AsCareer())
		}

		out = append(out, models.Enhance(
			cand,
			Blend(b.config, cand.Match, s),
			suggestions,
			Reasons(cand.Match, s),
		))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MLEnhancedScore > out[j].MLEnhancedScore
	})

	return &Result{
		Recommendations: out,
		MLEnhanced:      true,
		SnapshotID:      snapshotID,
	}, nil
}

// collaborativeScores returns the user's collaborative scores keyed by career
// id. Lookups are cached per model snapshot so retraining invalidates them.
func (b *Blender) collaborativeScores(ctx context.Context, userID string) (map[string]float64, string, error) {
	if b.cf == nil {
		return nil, "", nil
	}

	snapshotID := b.cf.SnapshotID()
	if b.cache != nil && snapshotID != "" {
		if payload, ok := b.cache.Get(ctx, cache.Key("cf", snapshotID, userID)); ok {
			var recs []CareerScore
			if err := json.Unmarshal(payload, &recs); err == nil {
				b.cacheHits.Add(1)
				metrics.RecordCFCache(true)
				return scoreMap(recs), snapshotID, nil
			}
		}
	}

	recs, err := b.cf.RecommendFor(ctx, userID, b.config.CFDepth)
	if err != nil {
		if IsKind(err, KindModelNotTrained) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("collaborative lookup: %w", err)
	}

	// RecommendFor may have lazily loaded a snapshot.
	snapshotID = b.cf.SnapshotID()

	if b.cache != nil {
		b.cacheMisses.Add(1)
		metrics.RecordCFCache(false)
		if snapshotID != "" {
			if payload, err := json.Marshal(recs); err == nil {
				b.cache.Set(ctx, cache.Key("cf", snapshotID, userID), payload)
			}
		}
	}
	return scoreMap(recs), snapshotID, nil
}

func scoreMap(recs []CareerScore) map[string]float64 {
	m := make(map[string]float64, len(recs))
	for _, r := range recs {
		if _, dup := m[r.CareerID]; !dup {
			m[r.CareerID] = r.MLEnhancedScore
		}
	}
	return m
}

func (b *Blender) fallback(candidates []models.Candidate, err error) *Result {
	b.fallbacks.Add(1)
	out := make([]models.EnhancedRecommendation, len(candidates))
	for i := range candidates {
		out[i] = models.Passthrough(candidates[i])
	}
	return &Result{
		Recommendations: out,
		MLEnhanced:      false,
		Err:             err,
	}
}
