// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package models

import (
	"slices"
	"time"
)

// SimilarityKind identifies which signal produced a similar-item entry.
// The numeric values are part of the stored record format.
type SimilarityKind int

const (
	// SimilarityKindTag marks neighbors found by tag cosine similarity.
	SimilarityKindTag SimilarityKind = 1

	// SimilarityKindIngredient marks neighbors found by ingredient TF-IDF cosine similarity.
	SimilarityKindIngredient SimilarityKind = 2
)

// String returns the kind name used in logs.
func (k SimilarityKind) String() string {
	switch k {
	case SimilarityKindTag:
		return "tag"
	case SimilarityKindIngredient:
		return "ingredient"
	default:
		return "unknown"
	}
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	// Name identifies the ingredient across recipes ("flour", "butter").
	Name string `json:"ingredient" validate:"required"`

	// Amount is free text as entered by the author ("2 cups").
	Amount string `json:"amount,omitempty"`
}

// SimilarItem is one entry of an item's similar-items neighborhood.
type SimilarItem struct {
	ItemID int64          `json:"item_id"`
	Score  float64        `json:"score"`
	Kind   SimilarityKind `json:"kind"`
}

// Item is a recipe.
type Item struct {
	ID          int64        `json:"id" validate:"gt=0"`
	Title       string       `json:"title,omitempty"`
	Tags        []string     `json:"tags"`
	Ingredients []Ingredient `json:"ingredients" validate:"dive"`
	Favorites   []int64      `json:"favorites"`
	CreatedAt   time.Time    `json:"created_at"`

	// Derived fields.
	AvgRating        float64       `json:"avg_rating"`
	InterestingScore float64       `json:"interesting_score"`
	SimilarItems     []SimilarItem `json:"similar_items"`
}

// FavoriteCount returns the number of users who favorited the item.
func (i *Item) FavoriteCount() int {
	return len(i.Favorites)
}

// IngredientNames returns the ingredient names in recipe order, duplicates included.
func (i *Item) IngredientNames() []string {
	names := make([]string, len(i.Ingredients))
	for idx, ing := range i.Ingredients {
		names[idx] = ing.Name
	}
	return names
}

// ClearDerived removes the derived neighborhood. AvgRating and
// InterestingScore are kept: the first is only overwritten when the item has
// ratings, the second is overwritten for every item on each run.
func (i *Item) ClearDerived() {
	i.SimilarItems = nil
}

// Clone returns a deep copy of the item.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	c := *i
	c.Tags = slices.Clone(i.Tags)
	c.Ingredients = slices.Clone(i.Ingredients)
	c.Favorites = slices.Clone(i.Favorites)
	c.SimilarItems = slices.Clone(i.SimilarItems)
	return &c
}
