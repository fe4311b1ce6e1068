// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package recommend

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/metrics"
	"github.com/tomtom215/forkcast/internal/models"
	"github.com/tomtom215/forkcast/internal/recommend/algorithms"
	"github.com/tomtom215/forkcast/internal/store"
)

// Pipeline recomputes every derived field from the raw data in the store.
//
// A run executes the stages returned by StageNames in order. Each stage is a
// full pass over its entity set; per-entity stages fan out over a bounded
// worker pool and wait for all workers before the next stage starts.
type Pipeline struct {
	store  store.Store
	config *Config
	logger zerolog.Logger
	now    func() time.Time

	runMu sync.Mutex
}

// NewPipeline creates a pipeline over st. A nil cfg selects DefaultConfig.
//
//nolint:gocritic // hugeParam: zerolog.Logger is passed by value by convention
func NewPipeline(st store.Store, cfg *Config, logger zerolog.Logger) (*Pipeline, error) {
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Pipeline{
		store:  st,
		config: cfg.Clone(),
		logger: logger.With().Str("component", "pipeline").Logger(),
		now:    time.Now,
	}, nil
}

// SetClock replaces the time source used for the interesting score.
func (p *Pipeline) SetClock(now func() time.Time) {
	p.now = now
}

// Config returns a copy of the pipeline configuration.
func (p *Pipeline) Config() *Config {
	return p.config.Clone()
}

// run holds the per-run state shared between stages.
type run struct {
	p      *Pipeline
	logger zerolog.Logger

	sim      algorithms.UserSimilarity
	idf      *algorithms.IDFIndex
	space    *algorithms.TagSpace
	features *algorithms.ItemFeatures
}

type stage struct {
	name string
	fn   func(ctx context.Context) (int, error)
}

// Run executes one full pipeline run. The context is checked before every
// stage and before each entity is dispatched; a write already in flight is
// allowed to finish. On failure the returned report covers the stages that
// ran and the error is a *StageError.
func (p *Pipeline) Run(ctx context.Context) (*RunReport, error) {
	if !p.runMu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer p.runMu.Unlock()

	sim, err := algorithms.UserSimilarityByName(p.config.Neighborhood.UserSimilarity)
	if err != nil {
		return nil, err
	}

	runID := logging.GenerateRunID()
	ctx = logging.ContextWithRunID(ctx, runID)
	r := &run{
		p:      p,
		logger: p.logger.With().Str("run_id", runID).Logger(),
		sim:    sim,
	}

	report := &RunReport{RunID: runID, Started: time.Now()}
	r.progress().Int("workers", p.config.Workers).Msg("pipeline run started")

	for _, s := range r.stages() {
		if err := ctx.Err(); err != nil {
			return r.fail(report, s.name, err)
		}

		r.progress().Str("stage", s.name).Msg("running stage")
		start := time.Now()
		n, err := s.fn(logging.ContextWithStage(ctx, s.name))
		elapsed := time.Since(start)

		metrics.RecordPipelineStage(s.name, elapsed, n, err)
		sr := StageReport{Name: s.name, Duration: elapsed, Entities: n}
		if err != nil {
			sr.Error = err.Error()
			report.Stages = append(report.Stages, sr)
			return r.fail(report, s.name, err)
		}
		report.Stages = append(report.Stages, sr)

		logging.Ctx(logging.ContextWithStage(ctx, s.name)).Debug().
			Int("entities", n).
			Dur("duration", elapsed).
			Msg("stage complete")
	}

	report.Finished = time.Now()
	metrics.RecordPipelineRun(report.Duration(), nil)
	r.progress().
		Dur("duration", report.Duration()).
		Int("stages", len(report.Stages)).
		Msg("pipeline run complete")
	return report, nil
}

// progress starts a run progress event. Progress lines carry no level so that
// LOG_LEVEL=warn or error still shows which stage a run is in.
func (r *run) progress() *zerolog.Event {
	return r.logger.WithLevel(zerolog.NoLevel)
}

func (r *run) fail(report *RunReport, stageName string, err error) (*RunReport, error) {
	report.Finished = time.Now()
	metrics.RecordPipelineRun(report.Duration(), err)
	r.logger.Error().
		Err(err).
		Str("stage", stageName).
		Dur("duration", report.Duration()).
		Msg("pipeline run failed")
	return report, &StageError{Stage: stageName, Err: err}
}

func (r *run) stages() []stage {
	return []stage{
		{StageClear, r.clear},
		{StageUserAverages, r.userAverages},
		{StageMostFavorited, r.mostFavorited},
		{StageItemAverages, r.itemAverages},
		{StageBestRated, r.bestRated},
		{StageInteresting, r.interesting},
		{StageSimilarUsers, r.similarUsers},
		{StageIDF, r.buildIDF},
		{StageSimilarItems, r.similarItems},
		{StageCollaborative, r.collaborative},
		{StageContentBased, r.contentBased},
	}
}

// forEach runs fn for every entity on at most workers goroutines and waits
// for all of them. The first error cancels the remaining work. If the parent
// context is cancelled, no further entities are dispatched and its error is
// returned after the in-flight ones finish.
func forEach[T any](ctx context.Context, workers int, entities []T, fn func(ctx context.Context, e T) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, e := range entities {
		if algorithms.ContextCancelled(gctx) {
			break
		}
		g.Go(func() error {
			return fn(gctx, e)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// saveUser persists a user without letting cancellation interrupt the write.
func (r *run) saveUser(ctx context.Context, u *models.User) error {
	return r.p.store.SaveUser(context.WithoutCancel(ctx), u)
}

// saveItem persists an item without letting cancellation interrupt the write.
func (r *run) saveItem(ctx context.Context, it *models.Item) error {
	return r.p.store.SaveItem(context.WithoutCancel(ctx), it)
}

// updateAggregate applies fn to the stored aggregate and saves it.
func (r *run) updateAggregate(ctx context.Context, fn func(agg *models.Aggregate)) error {
	agg, err := r.p.store.GetAggregate(ctx)
	if err != nil {
		return err
	}
	fn(agg)
	return r.p.store.SaveAggregate(context.WithoutCancel(ctx), agg)
}

func (r *run) clear(ctx context.Context) (int, error) {
	return 0, r.p.store.ClearDerivedFields(ctx)
}

func (r *run) userAverages(ctx context.Context) (int, error) {
	users, err := r.p.store.AllUsers(ctx)
	if err != nil {
		return 0, err
	}

	err = forEach(ctx, r.p.config.Workers, users, func(ctx context.Context, u *models.User) error {
		out := *u
		out.AvgRating = algorithms.UserAverage(u)
		return r.saveUser(ctx, &out)
	})
	return len(users), err
}

func (r *run) mostFavorited(ctx context.Context) (int, error) {
	items, err := r.p.store.AllItems(ctx)
	if err != nil {
		return 0, err
	}

	top := algorithms.MostFavorited(items, r.p.config.Trending.TopFavorites)
	err = r.updateAggregate(ctx, func(agg *models.Aggregate) {
		agg.TopFavorites = top
	})
	return len(top), err
}

// itemAverages writes the average of every rated item. Items nobody rated
// keep their stored average.
func (r *run) itemAverages(ctx context.Context) (int, error) {
	users, err := r.p.store.AllUsers(ctx)
	if err != nil {
		return 0, err
	}
	items, err := r.p.store.AllItems(ctx)
	if err != nil {
		return 0, err
	}

	avgs := algorithms.ItemAverages(users)
	rated := make([]*models.Item, 0, len(avgs))
	for _, it := range items {
		if _, ok := avgs[it.ID]; ok {
			rated = append(rated, it)
		}
	}
	if skipped := len(items) - len(rated); skipped > 0 {
		r.logger.Debug().Int("items", skipped).Msg("items without ratings keep their average")
	}

	err = forEach(ctx, r.p.config.Workers, rated, func(ctx context.Context, it *models.Item) error {
		out := *it
		out.AvgRating = avgs[it.ID]
		return r.saveItem(ctx, &out)
	})
	return len(rated), err
}

func (r *run) bestRated(ctx context.Context) (int, error) {
	items, err := r.p.store.AllItems(ctx)
	if err != nil {
		return 0, err
	}

	top := algorithms.BestRated(items, r.p.config.Trending.TopRated)
	err = r.updateAggregate(ctx, func(agg *models.Aggregate) {
		agg.TopRated = top
	})
	return len(top), err
}

func (r *run) interesting(ctx context.Context) (int, error) {
	items, err := r.p.store.AllItems(ctx)
	if err != nil {
		return 0, err
	}

	now := r.p.now()
	gravity := r.p.config.Trending.Gravity

	scores := make(map[int64]float64, len(items))
	for _, it := range items {
		scores[it.ID] = algorithms.InterestingScore(it, now, gravity)
	}

	err = forEach(ctx, r.p.config.Workers, items, func(ctx context.Context, it *models.Item) error {
		out := *it
		out.InterestingScore = scores[it.ID]
		return r.saveItem(ctx, &out)
	})
	if err != nil {
		return 0, err
	}

	top := algorithms.MostInteresting(items, now, gravity, r.p.config.Trending.TopInteresting)
	err = r.updateAggregate(ctx, func(agg *models.Aggregate) {
		agg.TopInteresting = top
	})
	return len(items), err
}

func (r *run) similarUsers(ctx context.Context) (int, error) {
	users, err := r.p.store.AllUsers(ctx)
	if err != nil {
		return 0, err
	}

	k := r.p.config.Neighborhood.SimilarUsers
	err = forEach(ctx, r.p.config.Workers, users, func(ctx context.Context, u *models.User) error {
		out := *u
		out.SimilarUsers = algorithms.SimilarUsers(u, users, r.sim, k)
		return r.saveUser(ctx, &out)
	})
	return len(users), err
}

// buildIDF builds the per-run ingredient index and tag space. Nothing is
// persisted.
func (r *run) buildIDF(ctx context.Context) (int, error) {
	items, err := r.p.store.AllItems(ctx)
	if err != nil {
		return 0, err
	}
	agg, err := r.p.store.GetAggregate(ctx)
	if err != nil {
		return 0, err
	}

	r.idf = algorithms.BuildIDFIndex(items)
	r.space = algorithms.NewTagSpace(agg.Tags)
	r.features = algorithms.NewItemFeatures(items, r.space, r.idf)

	r.logger.Debug().
		Int("ingredients", r.idf.Len()).
		Int("tags", r.space.Len()).
		Int("items", r.idf.Documents()).
		Msg("built idf index")
	return r.idf.Len(), nil
}

func (r *run) similarItems(ctx context.Context) (int, error) {
	items, err := r.p.store.AllItems(ctx)
	if err != nil {
		return 0, err
	}

	perKind := r.p.config.Neighborhood.SimilarItemsPerKind
	limit := r.p.config.Neighborhood.MaxSimilarItems
	err = forEach(ctx, r.p.config.Workers, items, func(ctx context.Context, it *models.Item) error {
		out := *it
		out.SimilarItems = algorithms.SimilarItems(it, items, r.features, perKind, limit)
		return r.saveItem(ctx, &out)
	})
	return len(items), err
}

func (r *run) collaborative(ctx context.Context) (int, error) {
	users, err := r.p.store.AllUsers(ctx)
	if err != nil {
		return 0, err
	}
	items, err := r.p.store.AllItems(ctx)
	if err != nil {
		return 0, err
	}

	byID := make(map[int64]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	n := r.p.config.Prediction.CollaborativeTopN
	err = forEach(ctx, r.p.config.Workers, users, func(ctx context.Context, u *models.User) error {
		for _, su := range u.SimilarUsers {
			if _, ok := byID[su.UserID]; !ok {
				return &store.DataAccessError{Op: "get user", ID: su.UserID, Err: store.ErrNotFound}
			}
		}
		out := *u
		out.Predicted = algorithms.PredictCollaborative(u, items, byID, n)
		return r.saveUser(ctx, &out)
	})
	return len(users), err
}

// contentBased appends content-based predictions after the collaborative
// ones. Users without good items are left untouched.
func (r *run) contentBased(ctx context.Context) (int, error) {
	users, err := r.p.store.AllUsers(ctx)
	if err != nil {
		return 0, err
	}
	items, err := r.p.store.AllItems(ctx)
	if err != nil {
		return 0, err
	}

	byID := make(map[int64]*models.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	threshold := r.p.config.Prediction.GoodRatingThreshold
	n := r.p.config.Prediction.ContentTopN
	var written atomic.Int64

	err = forEach(ctx, r.p.config.Workers, users, func(ctx context.Context, u *models.User) error {
		goodIDs := u.GoodItems(threshold)
		if len(goodIDs) == 0 {
			return nil
		}

		good := make([]*models.Item, 0, len(goodIDs))
		for _, id := range goodIDs {
			it, ok := byID[id]
			if !ok {
				return &store.DataAccessError{Op: "get item", ID: id, Err: store.ErrNotFound}
			}
			good = append(good, it)
		}

		profile := algorithms.BuildProfile(good, r.space)
		preds := algorithms.PredictContent(profile, items, r.features, n)

		out := *u
		out.Predicted = append(slices.Clone(u.Predicted), preds...)
		if err := r.saveUser(ctx, &out); err != nil {
			return err
		}
		written.Add(1)
		return nil
	})
	return int(written.Load()), err
}
