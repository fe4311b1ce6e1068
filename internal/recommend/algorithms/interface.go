// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package algorithms

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/tomtom215/forkcast/internal/models"
)

// User similarity metric names accepted by UserSimilarityByName.
const (
	MetricPearson   = "pearson"
	MetricEuclidean = "euclidean"
)

// UserSimilarity scores two users. Implementations must be symmetric and
// return 0 for degenerate input.
type UserSimilarity func(a, b *models.User) float64

// UserSimilarityByName resolves a metric name. An empty name selects Pearson.
func UserSimilarityByName(name string) (UserSimilarity, error) {
	switch name {
	case MetricPearson, "":
		return Pearson, nil
	case MetricEuclidean:
		return Euclidean, nil
	default:
		return nil, fmt.Errorf("unknown user similarity metric %q", name)
	}
}

// ScoredID pairs an entity id with a score.
type ScoredID struct {
	ID    int64
	Score float64
}

// byScoreDesc orders by score descending, then id ascending.
func byScoreDesc(a, b ScoredID) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// TopN sorts scored by score descending (ties by id ascending) and returns
// at most n entries. The input slice is reordered in place.
func TopN(scored []ScoredID, n int) []ScoredID {
	slices.SortFunc(scored, byScoreDesc)
	if n >= 0 && len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// RankIDs is TopN reduced to ids.
func RankIDs(scored []ScoredID, n int) []int64 {
	top := TopN(scored, n)
	ids := make([]int64, len(top))
	for i, s := range top {
		ids[i] = s.ID
	}
	return ids
}

// cosine finishes a cosine computation from its accumulated parts.
// Zero norms yield 0; the result is clamped against rounding drift.
func cosine(dot, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / math.Sqrt(normA*normB)
	if math.IsNaN(sim) {
		return 0
	}
	return max(-1, min(1, sim))
}

// VectorCosine computes cosine similarity between two dense vectors of equal
// length. Mismatched or empty vectors score 0.
func VectorCosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	return cosine(dot, normA, normB)
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
