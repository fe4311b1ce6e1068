// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package recommend

import (
	"fmt"
	"runtime"

	"github.com/tomtom215/forkcast/internal/recommend/algorithms"
)

// Config contains all configuration for the recommendation pipeline.
type Config struct {
	// Workers bounds the number of entities processed concurrently within a
	// stage. Default: runtime.NumCPU().
	Workers int `json:"workers"`

	// Neighborhood contains similarity neighborhood parameters.
	Neighborhood NeighborhoodConfig `json:"neighborhood"`

	// Prediction contains personalized prediction parameters.
	Prediction PredictionConfig `json:"prediction"`

	// Trending contains non-personalized ranking parameters.
	Trending TrendingConfig `json:"trending"`
}

// NeighborhoodConfig contains parameters for user and item neighborhoods.
type NeighborhoodConfig struct {
	// UserSimilarity selects the user-user metric: "pearson" or "euclidean".
	// Default: "pearson".
	UserSimilarity string `json:"user_similarity"`

	// SimilarUsers is the number of neighbors kept per user.
	// Default: 7.
	SimilarUsers int `json:"similar_users"`

	// SimilarItemsPerKind is the number of neighbors taken by each item
	// similarity pass (ingredient, then tag).
	// Default: 2.
	SimilarItemsPerKind int `json:"similar_items_per_kind"`

	// MaxSimilarItems caps an item's combined neighborhood.
	// Default: 4.
	MaxSimilarItems int `json:"max_similar_items"`
}

// PredictionConfig contains parameters for the two predictors.
type PredictionConfig struct {
	// CollaborativeTopN is the number of collaborative predictions kept.
	// Default: 10.
	CollaborativeTopN int `json:"collaborative_top_n"`

	// ContentTopN is the number of content-based predictions appended.
	// Default: 7.
	ContentTopN int `json:"content_top_n"`

	// GoodRatingThreshold is the minimum rating for an item to count as
	// liked when building taste profiles.
	// Default: 4.
	GoodRatingThreshold float64 `json:"good_rating_threshold"`
}

// TrendingConfig contains parameters for the aggregate rankings.
type TrendingConfig struct {
	// TopFavorites is the length of the most-favorited list.
	// Default: 10.
	TopFavorites int `json:"top_favorites"`

	// TopRated is the length of the best-rated list.
	// Default: 15.
	TopRated int `json:"top_rated"`

	// TopInteresting is the length of the interesting list.
	// Default: 10.
	TopInteresting int `json:"top_interesting"`

	// Gravity is the age decay exponent of the interesting score.
	// Default: 1.8.
	Gravity float64 `json:"gravity"`
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() *Config {
	return &Config{
		Workers: runtime.NumCPU(),
		Neighborhood: NeighborhoodConfig{
			UserSimilarity:      algorithms.MetricPearson,
			SimilarUsers:        7,
			SimilarItemsPerKind: 2,
			MaxSimilarItems:     4,
		},
		Prediction: PredictionConfig{
			CollaborativeTopN:   10,
			ContentTopN:         7,
			GoodRatingThreshold: 4,
		},
		Trending: TrendingConfig{
			TopFavorites:   10,
			TopRated:       15,
			TopInteresting: 10,
			Gravity:        algorithms.DefaultGravity,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}

	if _, err := algorithms.UserSimilarityByName(c.Neighborhood.UserSimilarity); err != nil {
		return fmt.Errorf("neighborhood.user_similarity: %w", err)
	}
	if c.Neighborhood.SimilarUsers < 0 {
		return fmt.Errorf("neighborhood.similar_users must be non-negative, got %d", c.Neighborhood.SimilarUsers)
	}
	if c.Neighborhood.SimilarItemsPerKind < 0 {
		return fmt.Errorf("neighborhood.similar_items_per_kind must be non-negative, got %d", c.Neighborhood.SimilarItemsPerKind)
	}
	if c.Neighborhood.MaxSimilarItems < 0 {
		return fmt.Errorf("neighborhood.max_similar_items must be non-negative, got %d", c.Neighborhood.MaxSimilarItems)
	}

	if c.Prediction.CollaborativeTopN < 0 {
		return fmt.Errorf("prediction.collaborative_top_n must be non-negative, got %d", c.Prediction.CollaborativeTopN)
	}
	if c.Prediction.ContentTopN < 0 {
		return fmt.Errorf("prediction.content_top_n must be non-negative, got %d", c.Prediction.ContentTopN)
	}
	if c.Prediction.GoodRatingThreshold < 0 || c.Prediction.GoodRatingThreshold > 5 {
		return fmt.Errorf("prediction.good_rating_threshold must be in [0, 5], got %f", c.Prediction.GoodRatingThreshold)
	}

	if c.Trending.TopFavorites < 0 || c.Trending.TopRated < 0 || c.Trending.TopInteresting < 0 {
		return fmt.Errorf("trending list lengths must be non-negative, got %d/%d/%d",
			c.Trending.TopFavorites, c.Trending.TopRated, c.Trending.TopInteresting)
	}
	if c.Trending.Gravity <= 0 {
		return fmt.Errorf("trending.gravity must be positive, got %f", c.Trending.Gravity)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - nested structs contain only value types
	clone := *c
	return &clone
}
