// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package algorithms

import (
	"math"
	"slices"

	"github.com/tomtom215/forkcast/internal/models"
)

// pearsonEpsilon treats a denominator this small as zero. Rating scales are
// small integers, so anything below it is cancellation noise.
const pearsonEpsilon = 1e-12

// ratingPair holds two users' ratings of the same item.
type ratingPair struct {
	a, b float64
}

// firstRatings maps each rated item to the user's first rating of it.
func firstRatings(u *models.User) map[int64]float64 {
	m := make(map[int64]float64, len(u.Ratings))
	for _, r := range u.Ratings {
		if _, ok := m[r.ItemID]; !ok {
			m[r.ItemID] = r.Value
		}
	}
	return m
}

// mutualRatings returns the paired ratings of the items both users rated,
// ordered by item id.
func mutualRatings(a, b *models.User) []ratingPair {
	if len(a.Ratings) == 0 || len(b.Ratings) == 0 {
		return nil
	}

	ra := firstRatings(a)
	rb := firstRatings(b)

	common := make([]int64, 0, min(len(ra), len(rb)))
	for id := range ra {
		if _, ok := rb[id]; ok {
			common = append(common, id)
		}
	}
	slices.Sort(common)

	pairs := make([]ratingPair, len(common))
	for i, id := range common {
		pairs[i] = ratingPair{a: ra[id], b: rb[id]}
	}
	return pairs
}

// Pearson computes the Pearson correlation of two users over their mutual
// ratings. No overlap or zero variance on either side scores 0.
func Pearson(a, b *models.User) float64 {
	pairs := mutualRatings(a, b)
	if len(pairs) == 0 {
		return 0
	}

	// Compute means over common items
	var sumA, sumB float64
	for _, p := range pairs {
		sumA += p.a
		sumB += p.b
	}
	n := float64(len(pairs))
	meanA := sumA / n
	meanB := sumB / n

	var num, denA, denB float64
	for _, p := range pairs {
		diffA := p.a - meanA
		diffB := p.b - meanB
		num += diffA * diffB
		denA += diffA * diffA
		denB += diffB * diffB
	}

	den := math.Sqrt(denA * denB)
	if den <= pearsonEpsilon {
		return 0
	}
	return max(-1, min(1, num/den))
}

// Euclidean computes 1/(1+d) where d is the euclidean distance between the
// users' mutual ratings. Self comparison and no overlap score 0.
func Euclidean(a, b *models.User) float64 {
	if a.ID == b.ID {
		return 0
	}
	pairs := mutualRatings(a, b)
	if len(pairs) == 0 {
		return 0
	}

	var sumSq float64
	for _, p := range pairs {
		d := p.a - p.b
		sumSq += d * d
	}
	return 1 / (1 + math.Sqrt(sumSq))
}

// SimilarUsers scores user against every other user and keeps the best k,
// sorted descending. Zero and negative scores are kept when fewer than k
// better neighbors exist.
func SimilarUsers(user *models.User, users []*models.User, sim UserSimilarity, k int) []models.SimilarUser {
	scored := make([]ScoredID, 0, len(users))
	for _, other := range users {
		if other.ID == user.ID {
			continue
		}
		scored = append(scored, ScoredID{ID: other.ID, Score: sim(user, other)})
	}

	top := TopN(scored, k)
	neighbors := make([]models.SimilarUser, len(top))
	for i, s := range top {
		neighbors[i] = models.SimilarUser{UserID: s.ID, Score: s.Score}
	}
	return neighbors
}

// SimilarItems builds an item's neighborhood in two passes. The ingredient
// pass takes up to perKind items by ingredient cosine; the tag pass then takes
// up to perKind more by tag cosine, skipping ids the ingredient pass already
// chose. The result never exceeds limit. Each pass is sorted descending.
func SimilarItems(item *models.Item, items []*models.Item, f *ItemFeatures, perKind, limit int) []models.SimilarItem {
	ingScores := make([]ScoredID, 0, len(items))
	tagScores := make([]ScoredID, 0, len(items))
	for _, other := range items {
		if other.ID == item.ID {
			continue
		}
		ingScores = append(ingScores, ScoredID{ID: other.ID, Score: f.IngredientSimilarity(item, other)})
		tagScores = append(tagScores, ScoredID{ID: other.ID, Score: f.TagSimilarity(item, other)})
	}

	result := make([]models.SimilarItem, 0, min(limit, 2*perKind))
	seen := make(map[int64]struct{}, limit)

	pass := func(scored []ScoredID, kind models.SimilarityKind) {
		slices.SortFunc(scored, byScoreDesc)
		added := 0
		for _, s := range scored {
			if added >= perKind || len(result) >= limit {
				return
			}
			if _, ok := seen[s.ID]; ok {
				continue
			}
			seen[s.ID] = struct{}{}
			result = append(result, models.SimilarItem{ItemID: s.ID, Score: s.Score, Kind: kind})
			added++
		}
	}

	pass(ingScores, models.SimilarityKindIngredient)
	pass(tagScores, models.SimilarityKindTag)
	return result
}
