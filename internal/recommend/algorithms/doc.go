// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package algorithms implements the scoring functions used by the
// recommendation pipeline.
//
// Everything here is a pure function of its inputs: no store access, no
// logging, no shared mutable state. The pipeline in package recommend loads
// snapshots, calls these functions from its worker pool, and persists the
// results.
//
// # Algorithm Categories
//
// Aggregate statistics:
//   - UserAverage: mean of a user's rating values
//   - ItemAverages: mean rating per item, scanned from the users side
//
// Non-personalized rankings:
//   - MostFavorited: favorite count descending
//   - BestRated: average rating ascending
//   - MostInteresting: recency-decayed popularity, (favorites+1)/(hours+2)^gravity
//
// Similarity:
//   - Pearson, Euclidean: user-user over mutual ratings
//   - TagCosine: item-item over binary tag vectors on the global vocabulary
//   - IngredientCosine: item-item over TF-IDF weighted ingredient vectors
//
// Prediction:
//   - PredictCollaborative: neighborhood-weighted rating prediction
//   - PredictContent: cosine match between a taste Profile and each item
//
// # Determinism
//
// Floating point sums are accumulated in a fixed order (sorted item ids,
// sorted ingredient names) so that every similarity is exactly symmetric and
// repeated runs produce identical scores. All rankings break ties by id
// ascending.
//
// # Degenerate Input
//
// Similarity functions never return NaN or an error. Empty overlaps, empty
// vectors and zero norms all score 0.
//
// # Usage Example
//
//	idf := algorithms.BuildIDFIndex(items)
//	space := algorithms.NewTagSpace(agg.Tags)
//	features := algorithms.NewItemFeatures(items, space, idf)
//
//	for _, item := range items {
//	    item.SimilarItems = algorithms.SimilarItems(item, items, features, 2, 4)
//	}
package algorithms
