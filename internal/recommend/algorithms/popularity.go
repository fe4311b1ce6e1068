// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package algorithms

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/tomtom215/forkcast/internal/models"
)

// DefaultGravity is the age decay exponent of the interesting score.
const DefaultGravity = 1.8

// MostFavorited returns up to n item ids by favorite count descending.
func MostFavorited(items []*models.Item, n int) []int64 {
	scored := make([]ScoredID, len(items))
	for i, item := range items {
		scored[i] = ScoredID{ID: item.ID, Score: float64(item.FavoriteCount())}
	}
	return RankIDs(scored, n)
}

// BestRated returns the first n item ids ordered by average rating
// ascending, ties by id ascending. Items never rated sort with their stored
// average (0 for new items).
func BestRated(items []*models.Item, n int) []int64 {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b *models.Item) int {
		if c := cmp.Compare(a.AvgRating, b.AvgRating); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	ids := make([]int64, len(sorted))
	for i, item := range sorted {
		ids[i] = item.ID
	}
	return ids
}

// InterestingScore computes (favorites+1) / (hours+2)^gravity where hours is
// the absolute age of the item at now. Items dated in the future decay the
// same way as past ones.
func InterestingScore(item *models.Item, now time.Time, gravity float64) float64 {
	hours := math.Abs(now.Sub(item.CreatedAt).Hours())
	return float64(item.FavoriteCount()+1) / math.Pow(hours+2, gravity)
}

// MostInteresting returns up to n item ids by interesting score descending.
func MostInteresting(items []*models.Item, now time.Time, gravity float64, n int) []int64 {
	scored := make([]ScoredID, len(items))
	for i, item := range items {
		scored[i] = ScoredID{ID: item.ID, Score: InterestingScore(item, now, gravity)}
	}
	return RankIDs(scored, n)
}
