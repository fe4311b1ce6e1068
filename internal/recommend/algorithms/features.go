// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package algorithms

import (
	"github.com/tomtom215/forkcast/internal/models"
)

// features is the precomputed representation of one item.
type features struct {
	tags        []float64
	hasTags     bool
	ingredients termVector
}

// ItemFeatures caches every item's tag vector and ingredient TF-IDF vector
// for one run. It is read-only after construction and safe for concurrent use.
type ItemFeatures struct {
	space *TagSpace
	idf   *IDFIndex
	items map[int64]*features
}

// NewItemFeatures precomputes the vectors of items against space and idf.
func NewItemFeatures(items []*models.Item, space *TagSpace, idf *IDFIndex) *ItemFeatures {
	f := &ItemFeatures{
		space: space,
		idf:   idf,
		items: make(map[int64]*features, len(items)),
	}
	for _, item := range items {
		f.items[item.ID] = f.compute(item)
	}
	return f
}

func (f *ItemFeatures) compute(item *models.Item) *features {
	return &features{
		tags:        f.space.Vector(item.Tags),
		hasTags:     len(item.Tags) > 0,
		ingredients: f.idf.itemVector(item),
	}
}

// lookup returns the cached features, computing them for unknown items.
func (f *ItemFeatures) lookup(item *models.Item) *features {
	if feat, ok := f.items[item.ID]; ok {
		return feat
	}
	return f.compute(item)
}

// IDF returns the index the ingredient vectors were built on.
func (f *ItemFeatures) IDF() *IDFIndex {
	return f.idf
}

// TagSimilarity is TagCosine on cached vectors.
func (f *ItemFeatures) TagSimilarity(a, b *models.Item) float64 {
	if a.ID == b.ID {
		return 0
	}
	fa, fb := f.lookup(a), f.lookup(b)
	if !fa.hasTags || !fb.hasTags {
		return 0
	}
	return VectorCosine(fa.tags, fb.tags)
}

// IngredientSimilarity is IngredientCosine on cached vectors.
func (f *ItemFeatures) IngredientSimilarity(a, b *models.Item) float64 {
	if a.ID == b.ID {
		return 0
	}
	return termCosine(f.lookup(a).ingredients, f.lookup(b).ingredients)
}
