// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package recommend runs the batch recommendation pipeline.
//
// A run reads users, recipes and the aggregate record from a store.Store,
// recomputes every derived field, and writes the results back. Nothing is
// served from this package; readers consume the stored fields.
//
// # Stages
//
// Stages run strictly in order and each one completes before the next
// starts:
//
//	clear           drop similar lists, predictions and rankings
//	user-averages   mean rating per user
//	most-favorited  aggregate.TopFavorites
//	item-averages   mean rating per rated item (unrated items keep theirs)
//	best-rated      aggregate.TopRated, lowest average first
//	interesting     per-item score and aggregate.TopInteresting
//	similar-users   k nearest users by Pearson (or Euclidean)
//	idf             ingredient IDF index and tag space, in memory only
//	similar-items   ingredient neighbors, then tag neighbors
//	collaborative   neighborhood-weighted rating predictions
//	content-based   taste-profile predictions appended after collaborative
//
// Per-entity stages fan out over Config.Workers goroutines. A worker only
// writes the entity it was handed, so no locking is needed inside a stage.
//
// # Failure Handling
//
// Any store error aborts the run. Run returns a *StageError naming the
// failed stage, and the cause is still reachable with errors.Is and
// errors.As (store.ErrNotFound, *store.DataAccessError, context.Canceled).
// A cancelled context is checked before each stage and before each entity;
// writes already started are completed so that no record is left half
// written.
//
// # Usage
//
//	p, err := recommend.NewPipeline(st, cfg, logging.Logger())
//	if err != nil {
//	    return err
//	}
//	report, err := p.Run(ctx)
//
// The algorithms themselves live in the algorithms subpackage as pure
// functions over model values.
package recommend
