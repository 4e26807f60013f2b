// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/cache"
	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/database"
	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend"
	"github.com/tomtom215/careerpath/internal/recommend/academic"
	"github.com/tomtom215/careerpath/internal/recommend/collab"
	"github.com/tomtom215/careerpath/internal/recommend/storage"
)

// ErrTrainingInProgress is returned when a training run is already active.
var ErrTrainingInProgress = errors.New("training already in progress")

// Notifier is told when freshly trained models have been persisted so other
// processes can reload them.
type Notifier interface {
	NotifyModelsUpdated(ctx context.Context) error
}

// Dependencies are the collaborators of a Service. Source and Cache may be
// nil.
type Dependencies struct {
	Source database.Source
	Store  storage.Store
	Cache  cache.Cacher
	Logger zerolog.Logger
}

// Service implements the command surface on top of the two engines and the
// blender. It is safe for concurrent use.
type Service struct {
	cfg     *config.Config
	src     database.Source
	store   storage.Store
	cache   cache.Cacher
	cf      *collab.Engine
	ap      *academic.Predictor
	blender *recommend.Blender
	logger  zerolog.Logger

	notifier Notifier
	trainMu  sync.Mutex
	now      func() time.Time
}

// New opens the model store, cache and data source described by cfg.
//
// An unreachable data source is not fatal: it is logged and training falls
// back to bootstrap data while health_check reports the database as down.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	store, err := storage.Open(storage.Backend(cfg.Models.Backend), cfg.Models.Dir)
	if err != nil {
		return nil, fmt.Errorf("open model store: %w", err)
	}

	c, err := cache.New(cfg.Cache.ToCache())
	if err != nil {
		_ = store.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("open cache: %w", err)
	}

	src, err := database.Open(ctx, cfg)
	if err != nil {
		logging.Error().Err(err).Str("driver", cfg.Source.Driver).Msg("Failed to connect to data source")
		src = nil
	}

	return NewWithDependencies(cfg, Dependencies{
		Source: src,
		Store:  store,
		Cache:  c,
		Logger: logging.Logger(),
	})
}

// NewWithDependencies builds a Service from explicit collaborators.
//
//nolint:gocritic // Dependencies is passed once at construction
func NewWithDependencies(cfg *config.Config, deps Dependencies) (*Service, error) {
	policy, err := academic.ParseSelectionPolicy(cfg.Models.SelectionPolicy)
	if err != nil {
		return nil, err
	}

	logger := deps.Logger.With().Str("component", "service").Logger()
	cf := collab.NewEngine(deps.Store, deps.Logger)
	ap := academic.NewPredictor(deps.Store, policy, deps.Logger)

	blender := recommend.NewBlender(&cfg.Blend, cf, ap, deps.Logger)
	if deps.Cache != nil {
		blender.SetCache(deps.Cache)
	}

	return &Service{
		cfg:     cfg,
		src:     deps.Source,
		store:   deps.Store,
		cache:   deps.Cache,
		cf:      cf,
		ap:      ap,
		blender: blender,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// SetNotifier registers a hook called after successful training.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// Close releases the data source, the model store and the cache.
func (s *Service) Close() error {
	var errs []error
	if s.src != nil {
		if err := s.src.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close source: %w", err))
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close model store: %w", err))
		}
	}
	if c, ok := s.cache.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cache: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *Service) timestamp() string {
	return s.now().Format(time.RFC3339Nano)
}

func (s *Service) log(ctx context.Context) zerolog.Logger {
	return s.logger.With().Str("correlation_id", logging.CorrelationIDFromContext(ctx)).Logger()
}

// loadData reads the training data. A missing source or an empty result is
// reported as KindDataUnavailable.
func (s *Service) loadData(ctx context.Context) ([]models.RecommendationRecord, []models.Career, error) {
	const op = "service.loadData"

	if s.src == nil {
		return nil, nil, recommend.E(recommend.KindDataUnavailable, op, errors.New("no data source connection"))
	}

	records, err := s.src.Recommendations(ctx)
	if err != nil {
		return nil, nil, recommend.E(recommend.KindDataUnavailable, op, err)
	}
	careers, err := s.src.Careers(ctx)
	if err != nil {
		return nil, nil, recommend.E(recommend.KindDataUnavailable, op, err)
	}

	log := s.log(ctx)
	log.Info().Int("records", len(records)).Int("careers", len(careers)).Msg("Loaded training data")

	if len(records) == 0 || len(careers) == 0 {
		return nil, nil, recommend.E(recommend.KindDataUnavailable, op, errors.New("no recommendation records or careers"))
	}
	return records, careers, nil
}

// TrainModels retrains both engines from the data source, or bootstraps the
// collaborative engine from built-in data when the source has nothing.
func (s *Service) TrainModels(ctx context.Context) *TrainResult {
	if !s.trainMu.TryLock() {
		return &TrainResult{Success: false, Error: ErrTrainingInProgress.Error(), Timestamp: s.timestamp()}
	}
	defer s.trainMu.Unlock()

	if s.cfg.Training.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Training.Timeout)
		defer cancel()
	}

	log := s.log(ctx)
	log.Info().Msg("Starting model training")

	records, careers, err := s.loadData(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Insufficient data for training, creating dummy models")
		return s.bootstrap(ctx)
	}

	res := &TrainResult{Success: true, Message: MessageTrained}

	cfReport, err := s.cf.Train(ctx, collab.DatasetFrom(records, careers))
	switch {
	case err != nil && ctx.Err() != nil:
		return &TrainResult{Success: false, Error: err.Error(), Timestamp: s.timestamp()}
	case err != nil:
		log.Error().Err(err).Msg("Collaborative filtering training failed")
	default:
		log.Info().Int("version", cfReport.Version).Msg("Collaborative filtering model trained")
	}
	res.Collaborative = cfReport

	apReport, err := s.ap.Train(ctx, academic.SamplesFrom(records))
	switch {
	case recommend.IsKind(err, recommend.KindInsufficientData):
		log.Warn().Err(err).Msg("Academic performance predictor not trained")
	case err != nil && ctx.Err() != nil:
		return &TrainResult{Success: false, Error: err.Error(), Timestamp: s.timestamp()}
	case err != nil:
		log.Error().Err(err).Msg("Academic performance predictor training failed")
	default:
		log.Info().Str("serving", apReport.Serving).Float64("best_r2", apReport.BestScore).Msg("Academic performance predictor trained")
	}
	res.Academic = apReport

	s.afterTraining(ctx)
	res.Timestamp = s.timestamp()
	return res
}

// bootstrap trains user similarity on the built-in data and persists it.
func (s *Service) bootstrap(ctx context.Context) *TrainResult {
	log := s.log(ctx)
	log.Info().Msg("Creating dummy models for testing")

	fail := func(err error) *TrainResult {
		log.Error().Err(err).Msg("Error creating dummy models")
		return &TrainResult{Success: false, Error: err.Error(), Timestamp: s.timestamp()}
	}

	ds := collab.DatasetFrom(BootstrapRecords(), BootstrapCareers())
	if _, err := s.cf.TrainSteps(ctx, ds, collab.Steps{UserSimilarity: true}); err != nil {
		return fail(err)
	}

	s.afterTraining(ctx)
	return &TrainResult{Success: true, Message: MessageBootstrapped, Timestamp: s.timestamp()}
}

// afterTraining prunes old artifact versions and notifies listeners.
func (s *Service) afterTraining(ctx context.Context) {
	log := s.log(ctx)

	if pruner, ok := s.store.(interface {
		Prune(ctx context.Context, name string, keep int) error
	}); ok && s.cfg.Models.KeepVersions > 0 {
		for _, name := range []string{storage.CollaborativeArtifact, storage.AcademicArtifact} {
			if err := pruner.Prune(ctx, name, s.cfg.Models.KeepVersions); err != nil {
				log.Warn().Err(err).Str("artifact", name).Msg("Failed to prune old model versions")
			}
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyModelsUpdated(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to publish model update")
		}
	}
}

// EnhanceRecommendations blends the request's candidates. It never fails: on
// error the original list is returned with success=false.
func (s *Service) EnhanceRecommendations(ctx context.Context, req *EnhanceRequest) *EnhanceResult {
	res := s.blender.Enhance(ctx, &req.User, req.Recommendations)
	out := &EnhanceResult{
		Success:                 res.Err == nil,
		EnhancedRecommendations: res.Recommendations,
		MLEnhanced:              res.MLEnhanced,
		Timestamp:               s.timestamp(),
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	return out
}

// SimilarCareers returns the careers most similar to careerID.
func (s *Service) SimilarCareers(ctx context.Context, careerID string, limit int) *SimilarResult {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	similar := s.cf.SimilarCareersOf(ctx, careerID, limit)
	if similar == nil {
		similar = []recommend.SimilarCareer{}
	}
	return &SimilarResult{Success: true, SimilarCareers: similar}
}

// PredictMatch scores one user and career pair: the academic success
// probability, and the collaborative rating when the factor model knows both.
func (s *Service) PredictMatch(ctx context.Context, req *PredictRequest) *PredictResult {
	careerID := req.CareerID.String()
	res := &PredictResult{
		Success:            true,
		UserID:             req.User.UserIDOrUnknown(),
		CareerID:           careerID,
		SuccessProbability: s.ap.PredictSuccessProbability(ctx, &req.User, careerID),
	}
	if rating, ok := s.cf.PredictRating(ctx, req.User.ID.String(), careerID); ok {
		rating = math.Max(0, math.Min(1, rating))
		res.CollaborativeRating = &rating
	}
	res.Timestamp = s.timestamp()
	return res
}

// ModelInfo lists the stored artifacts, the active snapshots and blender
// activity.
func (s *Service) ModelInfo(ctx context.Context) *ModelInfoResult {
	res := &ModelInfoResult{
		Success:   true,
		Artifacts: []storage.Metadata{},
		Active: ActiveModels{
			CollaborativeFiltering: s.cf.SnapshotID(),
			SelectionPolicy:        s.ap.Policy().String(),
		},
		Blender: s.blender.Stats(),
	}
	if snap := s.ap.Snapshot(); snap != nil {
		res.Active.AcademicPredictor = snap.ID
		res.Active.ServingRegressor = s.ap.Policy().Select(snap.Scores)
	}

	if s.store != nil {
		artifacts, err := s.store.List(ctx)
		if err != nil {
			res.Success = false
			res.Error = err.Error()
		} else if len(artifacts) > 0 {
			res.Artifacts = artifacts
		}
	}
	res.Timestamp = s.timestamp()
	return res
}

// PredictTrends ranks careers by recommendation frequency.
func (s *Service) PredictTrends(_ context.Context, req *TrendsRequest) *TrendsResult {
	return &TrendsResult{Success: true, Trends: recommend.PredictTrends(req.HistoricalData)}
}

// HealthCheck reports component health. The engines count as healthy when
// their artifacts exist.
func (s *Service) HealthCheck(ctx context.Context) *HealthResult {
	res := &HealthResult{
		Components: Components{
			CollaborativeFiltering: s.cf.Exists(ctx),
			AcademicPredictor:      s.ap.Exists(ctx),
		},
	}

	if s.src != nil {
		if err := s.src.Ping(ctx); err != nil {
			log := s.log(ctx)
			log.Debug().Err(err).Msg("Data source ping failed")
		} else {
			res.Components.Database = true
		}
	}

	res.Healthy = res.Components.CollaborativeFiltering || res.Components.AcademicPredictor
	res.Status = StatusDegraded
	if res.Healthy {
		res.Status = StatusOperational
	}
	res.Timestamp = s.timestamp()
	return res
}

// Reload replaces both engines' snapshots with the latest stored artifacts.
// A missing artifact is not a failure.
func (s *Service) Reload(ctx context.Context) *ReloadResult {
	log := s.log(ctx)
	res := &ReloadResult{Success: true, Message: MessageReloaded}

	check := func(name string, err error, snapshotID string) EngineReload {
		switch {
		case err == nil:
			return EngineReload{Loaded: snapshotID != "", SnapshotID: snapshotID}
		case recommend.IsKind(err, recommend.KindModelNotTrained):
			log.Info().Str("engine", name).Msg("No stored model to reload")
			return EngineReload{}
		default:
			log.Error().Err(err).Str("engine", name).Msg("Model reload failed")
			res.Success = false
			return EngineReload{Error: err.Error()}
		}
	}

	err := s.cf.Reload(ctx)
	res.CollaborativeFiltering = check("collaborative_filtering", err, s.cf.SnapshotID())

	err = s.ap.Reload(ctx)
	apID := ""
	if snap := s.ap.Snapshot(); snap != nil {
		apID = snap.ID
	}
	res.AcademicPredictor = check("academic_predictor", err, apID)

	if !res.Success {
		res.Message = ""
	}
	res.Timestamp = s.timestamp()
	return res
}

// ExportTrainingData copies the data source into a DuckDB file at path.
func (s *Service) ExportTrainingData(ctx context.Context, path string) *ExportResult {
	res := &ExportResult{Path: path}
	fail := func(err error) *ExportResult {
		res.Error = err.Error()
		res.Timestamp = s.timestamp()
		return res
	}

	if path == "" {
		return fail(errors.New("export path is required"))
	}

	records, careers, err := s.loadData(ctx)
	if err != nil {
		return fail(err)
	}

	duck, err := database.NewDuckDBSource(ctx, path)
	if err != nil {
		return fail(err)
	}
	defer func() {
		if cerr := duck.Close(); cerr != nil {
			log := s.log(ctx)
			log.Warn().Err(cerr).Msg("Failed to close DuckDB export")
		}
	}()

	if err := duck.Import(ctx, records, careers); err != nil {
		return fail(err)
	}

	res.Success = true
	res.Records = len(records)
	res.Careers = len(careers)
	res.Timestamp = s.timestamp()
	return res
}
