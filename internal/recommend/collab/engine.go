// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package collab

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/careerpath/internal/metrics"
	"github.com/tomtom215/careerpath/internal/recommend"
	"github.com/tomtom215/careerpath/internal/recommend/storage"
)

// Snapshot is an immutable collaborative-filtering model. Fields that have
// not been trained are nil. It is also the persisted artifact.
type Snapshot struct {
	ID      string
	Version int

	Users   *IndexTable
	Careers *IndexTable

	// Ratings is users × careers, every cell in [0, 1]
	Ratings *mat.Dense

	UserSimilarity *mat.Dense
	ItemSimilarity *mat.Dense

	// W is users × k and H is k × careers
	W *mat.Dense
	H *mat.Dense

	Interactions int
	TrainedAt    time.Time
}

// clone returns a shallow copy with a fresh ID. Matrices are never mutated
// after publication, so sharing them is safe.
func (s *Snapshot) clone() *Snapshot {
	c := *s
	c.ID = uuid.NewString()
	return &c
}

// TrainReport summarizes Engine.Train.
type TrainReport struct {
	Users          int           `json:"users"`
	Careers        int           `json:"careers"`
	Interactions   int           `json:"interactions"`
	UserSimilarity bool          `json:"user_similarity"`
	ItemSimilarity bool          `json:"item_similarity"`
	Factorization  bool          `json:"factorization"`
	Rank           int           `json:"rank,omitempty"`
	Version        int           `json:"version"`
	SnapshotID     string        `json:"snapshot_id"`
	Duration       time.Duration `json:"duration"`
}

// Engine owns the collaborative-filtering model. It is safe for concurrent
// use.
type Engine struct {
	store  storage.Store
	logger zerolog.Logger

	snap atomic.Pointer[Snapshot]

	// mu serializes snapshot updates (training steps, save, reload)
	mu sync.Mutex

	// trainMu rejects concurrent full training runs
	trainMu sync.Mutex
}

// NewEngine returns an empty engine. A nil store keeps models in memory only.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(store storage.Store, logger zerolog.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger.With().Str("component", "collab").Logger(),
	}
}

// Snapshot returns the active snapshot without triggering a load.
func (e *Engine) Snapshot() *Snapshot {
	return e.snap.Load()
}

// SnapshotID identifies the active snapshot, or "" when none is loaded.
func (e *Engine) SnapshotID() string {
	if s := e.snap.Load(); s != nil {
		return s.ID
	}
	return ""
}

// Steps selects the models Train fits on top of the interaction matrix.
type Steps struct {
	UserSimilarity bool
	ItemSimilarity bool
	Factorization  bool
}

// AllSteps fits every model.
var AllSteps = Steps{UserSimilarity: true, ItemSimilarity: true, Factorization: true}

// BuildMatrix replaces the model with a fresh rating matrix built from ds.
// Similarities and factors are cleared.
func (e *Engine) BuildMatrix(ds Dataset) error {
	snap, err := buildSnapshot(ds)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.snap.Store(snap)
	e.mu.Unlock()

	e.logger.Info().
		Int("users", snap.Users.Len()).
		Int("careers", snap.Careers.Len()).
		Int("interactions", snap.Interactions).
		Msg("interaction matrix built")
	return nil
}

// buildSnapshot builds an unpublished snapshot holding only the matrix.
func buildSnapshot(ds Dataset) (*Snapshot, error) {
	const op = "collab.BuildMatrix"

	careers := NewIndexTable(ds.Careers...)

	userIDs := make([]string, 0, len(ds.Users))
	seen := make(map[string]bool, len(ds.Users))
	for _, u := range ds.Users {
		if !seen[u] {
			seen[u] = true
			userIDs = append(userIDs, u)
		}
	}
	for _, in := range ds.Interactions {
		if !seen[in.UserID] {
			seen[in.UserID] = true
			userIDs = append(userIDs, in.UserID)
		}
	}
	sort.Strings(userIDs)
	users := NewIndexTable(userIDs...)

	if users.Len() == 0 || careers.Len() == 0 {
		return nil, recommend.E(recommend.KindNoData, op,
			fmt.Errorf("%d users, %d careers", users.Len(), careers.Len()))
	}

	ratings := mat.NewDense(users.Len(), careers.Len(), nil)
	used := 0
	for _, in := range ds.Interactions {
		c, ok := careers.Index(in.CareerID)
		if !ok {
			continue
		}
		u, _ := users.Index(in.UserID)
		ratings.Set(u, c, clampRating(in.Rating))
		used++
	}

	return &Snapshot{
		ID:           uuid.NewString(),
		Users:        users,
		Careers:      careers,
		Ratings:      ratings,
		Interactions: used,
		TrainedAt:    time.Now().UTC(),
	}, nil
}

func clampRating(r float64) float64 {
	if math.IsNaN(r) {
		return 0
	}
	return math.Max(0, math.Min(1, r))
}

// update applies fn to a copy of the current snapshot and publishes it.
func (e *Engine) update(op string, fn func(*Snapshot) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.snap.Load()
	if cur == nil || cur.Ratings == nil {
		return recommend.E(recommend.KindNotReady, op, errors.New("interaction matrix not built"))
	}
	next := cur.clone()
	if err := fn(next); err != nil {
		return err
	}
	e.snap.Store(next)
	return nil
}

func (e *Engine) fitUserSimilarity(s *Snapshot) error {
	s.UserSimilarity = cosineSimilarity(s.Ratings)
	e.logger.Info().Msg("user-based similarity trained")
	return nil
}

func (e *Engine) fitItemSimilarity(s *Snapshot) error {
	s.ItemSimilarity = cosineSimilarity(s.Ratings.T())
	e.logger.Info().Msg("item-based similarity trained")
	return nil
}

func (e *Engine) fitFactorization(ctx context.Context, s *Snapshot) error {
	r, c := s.Ratings.Dims()
	k := factorRank(r, c)
	W, H, err := factorize(ctx, s.Ratings, k)
	if err != nil {
		return err
	}
	s.W, s.H = W, H
	e.logger.Info().Int("rank", k).Msg("matrix factorization trained")
	return nil
}

// TrainUserSimilarity computes user-user cosine similarity on the active
// matrix and publishes the result.
func (e *Engine) TrainUserSimilarity() error {
	return e.update("collab.TrainUserSimilarity", e.fitUserSimilarity)
}

// TrainItemSimilarity computes career-career cosine similarity on the active
// matrix and publishes the result.
func (e *Engine) TrainItemSimilarity() error {
	return e.update("collab.TrainItemSimilarity", e.fitItemSimilarity)
}

// TrainFactorization fits the non-negative factor model on the active matrix
// and publishes the result.
func (e *Engine) TrainFactorization(ctx context.Context) error {
	return e.update("collab.TrainFactorization", func(s *Snapshot) error {
		return e.fitFactorization(ctx, s)
	})
}

// Train runs the full pipeline: matrix, both similarities and the factor
// model. See TrainSteps.
func (e *Engine) Train(ctx context.Context, ds Dataset) (*TrainReport, error) {
	return e.TrainSteps(ctx, ds, AllSteps)
}

// TrainSteps builds a new snapshot from ds with the selected models, persists
// it and publishes it in one swap. Readers keep the previous snapshot until
// then. Failures of individual model steps are logged and skipped. A failed
// save still publishes the snapshot and returns the error with the report.
func (e *Engine) TrainSteps(ctx context.Context, ds Dataset, steps Steps) (*TrainReport, error) {
	if !e.trainMu.TryLock() {
		return nil, fmt.Errorf("collab.Train: training already in progress")
	}
	defer e.trainMu.Unlock()

	start := time.Now()
	next, err := buildSnapshot(ds)
	if err != nil {
		metrics.RecordTraining(metrics.EngineCollaborative, time.Since(start), 0, err)
		return nil, err
	}
	e.logger.Info().
		Int("users", next.Users.Len()).
		Int("careers", next.Careers.Len()).
		Int("interactions", next.Interactions).
		Msg("interaction matrix built")

	type step struct {
		name string
		fn   func(*Snapshot) error
	}
	var plan []step
	if steps.UserSimilarity {
		plan = append(plan, step{"user_similarity", e.fitUserSimilarity})
	}
	if steps.ItemSimilarity {
		plan = append(plan, step{"item_similarity", e.fitItemSimilarity})
	}
	if steps.Factorization {
		plan = append(plan, step{"factorization", func(s *Snapshot) error { return e.fitFactorization(ctx, s) }})
	}
	for _, st := range plan {
		if err := st.fn(next); err != nil {
			if ctx.Err() != nil {
				metrics.RecordTraining(metrics.EngineCollaborative, time.Since(start), 0, ctx.Err())
				return nil, ctx.Err()
			}
			e.logger.Error().Err(err).Str("step", st.name).Msg("collaborative training step failed")
		}
	}

	e.mu.Lock()
	var saveErr error
	if e.store != nil {
		saveErr = e.persistLocked(ctx, next)
	}
	e.snap.Store(next)
	e.mu.Unlock()

	report := &TrainReport{
		Users:          next.Users.Len(),
		Careers:        next.Careers.Len(),
		Interactions:   next.Interactions,
		UserSimilarity: next.UserSimilarity != nil,
		ItemSimilarity: next.ItemSimilarity != nil,
		Factorization:  next.W != nil,
		Version:        next.Version,
		SnapshotID:     next.ID,
		Duration:       time.Since(start),
	}
	if next.W != nil {
		_, report.Rank = next.W.Dims()
	}
	metrics.RecordTraining(metrics.EngineCollaborative, report.Duration, report.Interactions, saveErr)
	return report, saveErr
}

// Save persists the active snapshot and records the assigned version.
func (e *Engine) Save(ctx context.Context) error {
	if e.store == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.snap.Load()
	if cur == nil {
		return recommend.E(recommend.KindNotReady, "collab.Save", errors.New("nothing to save"))
	}
	saved := *cur
	if err := e.persistLocked(ctx, &saved); err != nil {
		return err
	}
	e.snap.Store(&saved)
	return nil
}

// persistLocked writes s to the store and sets its Version. s must not be
// published yet. The caller holds e.mu.
func (e *Engine) persistLocked(ctx context.Context, s *Snapshot) error {
	users, careers := s.Ratings.Dims()
	meta, err := e.store.Save(ctx, storage.CollaborativeArtifact, s, storage.Metadata{
		SnapshotID:  s.ID,
		TrainedAt:   s.TrainedAt,
		SampleCount: s.Interactions,
		UserCount:   users,
		ItemCount:   careers,
	})
	if err != nil {
		return recommend.E(recommend.KindPersistence, "collab.Save", err)
	}
	s.Version = meta.Version

	e.logger.Info().Int("version", meta.Version).Msg("collaborative model saved")
	return nil
}

// current returns the active snapshot, loading it from the store on first use.
func (e *Engine) current(ctx context.Context) *Snapshot {
	if s := e.snap.Load(); s != nil {
		return s
	}
	if e.store == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if s := e.snap.Load(); s != nil {
		return s
	}
	if !e.store.Exists(ctx, storage.CollaborativeArtifact) {
		return nil
	}
	s, err := e.load(ctx)
	if err != nil {
		e.logger.Warn().Err(err).Msg("collaborative model load failed")
		return nil
	}
	e.snap.Store(s)
	return s
}

func (e *Engine) load(ctx context.Context) (*Snapshot, error) {
	const op = "collab.Load"

	var s Snapshot
	meta, err := e.store.Load(ctx, storage.CollaborativeArtifact, &s)
	if errors.Is(err, storage.ErrNotFound) {
		metrics.RecordModelLoad(metrics.EngineCollaborative, metrics.OutcomeMissing, 0)
		return nil, recommend.E(recommend.KindModelNotTrained, op, err)
	}
	if err != nil {
		metrics.RecordModelLoad(metrics.EngineCollaborative, metrics.OutcomeFailure, 0)
		return nil, recommend.E(recommend.KindPersistence, op, err)
	}
	if s.Ratings == nil || s.Users == nil || s.Careers == nil {
		metrics.RecordModelLoad(metrics.EngineCollaborative, metrics.OutcomeFailure, 0)
		return nil, recommend.E(recommend.KindPersistence, op, errors.New("artifact holds no interaction matrix"))
	}
	s.Version = meta.Version
	metrics.RecordModelLoad(metrics.EngineCollaborative, metrics.OutcomeSuccess, s.Version)

	e.logger.Info().
		Int("version", s.Version).
		Str("snapshot_id", s.ID).
		Int("users", s.Users.Len()).
		Int("careers", s.Careers.Len()).
		Msg("collaborative model loaded")
	return &s, nil
}

// Reload replaces the active snapshot with the latest stored artifact. On
// failure the engine becomes empty.
func (e *Engine) Reload(ctx context.Context) error {
	if e.store == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.load(ctx)
	if err != nil {
		e.snap.Store(nil)
		return err
	}
	e.snap.Store(s)
	return nil
}

// Exists reports whether a collaborative artifact is stored.
func (e *Engine) Exists(ctx context.Context) bool {
	return e.store != nil && e.store.Exists(ctx, storage.CollaborativeArtifact)
}
