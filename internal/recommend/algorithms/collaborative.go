// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package algorithms

import (
	"github.com/tomtom215/forkcast/internal/models"
)

// neighborRating is a neighbor's view of the user being predicted for.
type neighborRating struct {
	sim     float64
	avg     float64
	ratings map[int64]float64
}

// PredictCollaborative predicts a rating for every item the user has not
// rated, using the user's SimilarUsers as the neighborhood:
//
//	pred(U, I) = avg(U) + Σ sim(U,N)·(r(N,I) − avg(N)) / Σ sim(U,N)
//
// summed over neighbors N that rated I. When the similarity sum is 0 the
// prediction falls back to avg(U). The top n predictions are returned sorted
// descending.
//
// neighbors must contain every user referenced by user.SimilarUsers; ids
// missing from it are ignored.
func PredictCollaborative(user *models.User, items []*models.Item, neighbors map[int64]*models.User, n int) []models.Prediction {
	hood := make([]neighborRating, 0, len(user.SimilarUsers))
	for _, su := range user.SimilarUsers {
		nb, ok := neighbors[su.UserID]
		if !ok {
			continue
		}
		hood = append(hood, neighborRating{
			sim:     su.Score,
			avg:     nb.AvgRating,
			ratings: firstRatings(nb),
		})
	}

	scored := make([]ScoredID, 0, len(items))
	for _, item := range items {
		if user.HasRated(item.ID) {
			continue
		}

		var num, den float64
		for _, nb := range hood {
			r, ok := nb.ratings[item.ID]
			if !ok {
				continue
			}
			num += nb.sim * (r - nb.avg)
			den += nb.sim
		}

		pred := user.AvgRating
		if den != 0 {
			pred += num / den
		}
		scored = append(scored, ScoredID{ID: item.ID, Score: pred})
	}

	top := TopN(scored, n)
	preds := make([]models.Prediction, len(top))
	for i, s := range top {
		preds[i] = models.Prediction{ItemID: s.ID, Score: s.Score}
	}
	return preds
}
