// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package academic

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/metrics"
	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend"
	"github.com/tomtom215/careerpath/internal/recommend/features"
	"github.com/tomtom215/careerpath/internal/recommend/storage"
)

// Snapshot is an immutable trained model set. It is also the persisted
// artifact.
type Snapshot struct {
	ID          string
	Version     int
	Regressors  map[string]Regressor
	Scaler      *StandardScaler
	GradeTable  map[string]int
	Scores      map[string]float64
	Trained     bool
	TrainedAt   time.Time
	SampleCount int
}

// TrainReport summarizes a training run.
type TrainReport struct {
	Samples    int                `json:"samples"`
	TrainSize  int                `json:"train_size"`
	TestSize   int                `json:"test_size"`
	Scores     map[string]float64 `json:"scores"`
	Best       string             `json:"best_model"`
	BestScore  float64            `json:"best_score"`
	Serving    string             `json:"serving_model"`
	Version    int                `json:"version"`
	SnapshotID string             `json:"snapshot_id"`
	Duration   time.Duration      `json:"duration"`
}

// Predictor owns the academic model set. It is safe for concurrent use:
// predictions read an immutable snapshot while training builds a new one.
type Predictor struct {
	store  storage.Store
	policy SelectionPolicy
	logger zerolog.Logger

	snap atomic.Pointer[Snapshot]

	// loadMu serializes lazy loads from the store
	loadMu sync.Mutex

	// trainMu rejects concurrent training runs
	trainMu sync.Mutex
}

// NewPredictor returns an untrained predictor. A nil store keeps models in
// memory only.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPredictor(store storage.Store, policy SelectionPolicy, logger zerolog.Logger) *Predictor {
	return &Predictor{
		store:  store,
		policy: policy,
		logger: logger.With().Str("component", "academic").Logger(),
	}
}

// Policy returns the serving policy.
func (p *Predictor) Policy() SelectionPolicy {
	return p.policy
}

// Snapshot returns the active snapshot, or nil when untrained. It does not
// trigger a load.
func (p *Predictor) Snapshot() *Snapshot {
	return p.snap.Load()
}

// Train fits every regressor on samples, scores them on a holdout split,
// persists the result and makes it active.
func (p *Predictor) Train(ctx context.Context, samples []Sample) (*TrainReport, error) {
	const op = "academic.Train"

	if !p.trainMu.TryLock() {
		return nil, fmt.Errorf("%s: training already in progress", op)
	}
	defer p.trainMu.Unlock()

	if len(samples) == 0 {
		err := recommend.E(recommend.KindInsufficientData, op, errors.New("no training samples"))
		metrics.RecordTraining(metrics.EngineAcademic, 0, 0, err)
		return nil, err
	}

	start := time.Now()
	X := make([][]float64, len(samples))
	y := make([]float64, len(samples))
	for i, s := range samples {
		X[i] = s.Features
		y[i] = s.Target
	}

	trainIdx, testIdx := trainTestSplit(len(samples), DefaultTestFraction, DefaultSeed)
	xTrain, yTrain := gather(X, y, trainIdx)
	xTest, yTest := gather(X, y, testIdx)

	scaler := FitScaler(xTrain)
	xTrainScaled := scaler.TransformAll(xTrain)
	xTestScaled := scaler.TransformAll(xTest)

	regressors := make(map[string]Regressor, 3)
	scores := make(map[string]float64, 3)
	best, bestScore := "", math.Inf(-1)

	for _, reg := range newRegressors() {
		if err := reg.Fit(ctx, xTrainScaled, yTrain); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.logger.Error().Err(err).Str("model", reg.Name()).Msg("regressor training failed")
			continue
		}

		pred := make([]float64, len(xTestScaled))
		for i, row := range xTestScaled {
			pred[i] = reg.Predict(row)
		}
		r2 := r2Score(pred, yTest)

		regressors[reg.Name()] = reg
		scores[reg.Name()] = r2
		p.logger.Info().Str("model", reg.Name()).Float64("r2", r2).Msg("regressor trained")

		if r2 > bestScore {
			best, bestScore = reg.Name(), r2
		}
	}

	if len(regressors) == 0 {
		err := recommend.E(recommend.KindUnknown, op, errors.New("no regressor could be trained"))
		metrics.RecordTraining(metrics.EngineAcademic, time.Since(start), len(samples), err)
		return nil, err
	}
	metrics.RecordRegressorScores(scores)

	p.logger.Info().Str("model", best).Float64("r2", bestScore).Msg("best academic model")

	snap := &Snapshot{
		ID:          uuid.NewString(),
		Regressors:  regressors,
		Scaler:      scaler,
		GradeTable:  features.GradeTable(),
		Scores:      scores,
		Trained:     true,
		TrainedAt:   time.Now().UTC(),
		SampleCount: len(samples),
	}

	var persistErr error
	if p.store != nil {
		meta, err := p.store.Save(ctx, storage.AcademicArtifact, snap, storage.Metadata{
			SnapshotID:         snap.ID,
			TrainedAt:          snap.TrainedAt,
			SampleCount:        len(samples),
			TrainingDurationMS: time.Since(start).Milliseconds(),
		})
		if err != nil {
			persistErr = recommend.E(recommend.KindPersistence, op, err)
			p.logger.Error().Err(err).Msg("academic model save failed")
		} else {
			snap.Version = meta.Version
		}
	}
	p.snap.Store(snap)

	report := &TrainReport{
		Samples:    len(samples),
		TrainSize:  len(trainIdx),
		TestSize:   len(testIdx),
		Scores:     scores,
		Best:       best,
		BestScore:  bestScore,
		Serving:    p.policy.Select(scores),
		Version:    snap.Version,
		SnapshotID: snap.ID,
		Duration:   time.Since(start),
	}
	metrics.RecordTraining(metrics.EngineAcademic, report.Duration, len(samples), persistErr)
	return report, persistErr
}

func gather(X [][]float64, y []float64, idx []int) ([][]float64, []float64) {
	xs := make([][]float64, len(idx))
	ys := make([]float64, len(idx))
	for k, i := range idx {
		xs[k] = X[i]
		ys[k] = y[i]
	}
	return xs, ys
}

// current returns the active snapshot, loading it from the store on first use.
func (p *Predictor) current(ctx context.Context) *Snapshot {
	if s := p.snap.Load(); s != nil {
		return s
	}
	if p.store == nil {
		return nil
	}

	p.loadMu.Lock()
	defer p.loadMu.Unlock()
	if s := p.snap.Load(); s != nil {
		return s
	}
	if !p.store.Exists(ctx, storage.AcademicArtifact) {
		return nil
	}
	s, err := p.load(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("academic model load failed")
		return nil
	}
	p.snap.Store(s)
	return s
}

func (p *Predictor) load(ctx context.Context) (*Snapshot, error) {
	const op = "academic.Load"

	var s Snapshot
	meta, err := p.store.Load(ctx, storage.AcademicArtifact, &s)
	if errors.Is(err, storage.ErrNotFound) {
		metrics.RecordModelLoad(metrics.EngineAcademic, metrics.OutcomeMissing, 0)
		return nil, recommend.E(recommend.KindModelNotTrained, op, err)
	}
	if err != nil {
		metrics.RecordModelLoad(metrics.EngineAcademic, metrics.OutcomeFailure, 0)
		return nil, recommend.E(recommend.KindPersistence, op, err)
	}
	if !s.Trained || len(s.Regressors) == 0 || s.Scaler == nil {
		metrics.RecordModelLoad(metrics.EngineAcademic, metrics.OutcomeFailure, 0)
		return nil, recommend.E(recommend.KindPersistence, op, errors.New("artifact holds no trained models"))
	}
	s.Version = meta.Version
	metrics.RecordModelLoad(metrics.EngineAcademic, metrics.OutcomeSuccess, s.Version)

	p.logger.Info().
		Int("version", s.Version).
		Str("snapshot_id", s.ID).
		Int("models", len(s.Regressors)).
		Msg("academic model loaded")
	return &s, nil
}

// Reload replaces the active snapshot with the latest stored artifact. On
// failure the predictor becomes untrained.
func (p *Predictor) Reload(ctx context.Context) error {
	if p.store == nil {
		return nil
	}

	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	s, err := p.load(ctx)
	if err != nil {
		p.snap.Store(nil)
		return err
	}
	p.snap.Store(s)
	return nil
}

// PredictMatch predicts a match score in [0, 100] for the exam results.
// The career id is not a model input; every career shares one model.
func (p *Predictor) PredictMatch(ctx context.Context, results *models.KCSEResults, _ string) (float64, error) {
	const op = "academic.PredictMatch"

	s := p.current(ctx)
	if s == nil {
		return 0, recommend.E(recommend.KindModelNotTrained, op, nil)
	}

	name := p.policy.Select(s.Scores)
	reg, ok := s.Regressors[name]
	if !ok {
		return 0, recommend.E(recommend.KindModelNotTrained, op, fmt.Errorf("regressor %q missing", name))
	}

	v := features.Extract(results)
	pred := reg.Predict(s.Scaler.Transform(v[:]))
	if math.IsNaN(pred) || math.IsInf(pred, 0) {
		return 0, recommend.E(recommend.KindPrediction, op, fmt.Errorf("%s produced %v", name, pred))
	}
	return clamp(pred, 0, 100), nil
}

// DefaultSuccessProbability is returned when no prediction can be made.
const DefaultSuccessProbability = 0.5

// PredictSuccessProbability maps the predicted match score onto [0, 1].
func (p *Predictor) PredictSuccessProbability(ctx context.Context, user *models.User, careerID string) float64 {
	if !user.HasExamResults() {
		return DefaultSuccessProbability
	}
	score, err := p.PredictMatch(ctx, user.KCSEResults, careerID)
	if err != nil {
		return DefaultSuccessProbability
	}
	return score / 100
}

// Exists reports whether an academic artifact is stored.
func (p *Predictor) Exists(ctx context.Context) bool {
	return p.store != nil && p.store.Exists(ctx, storage.AcademicArtifact)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

var _ recommend.AcademicModel = (*Predictor)(nil)
