// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package algorithms

import (
	"cmp"
	"math"
	"slices"

	"github.com/tomtom215/forkcast/internal/models"
)

// IDFIndex maps ingredient names to inverse document frequency, where a
// document is an item. It is built once per run and read concurrently.
type IDFIndex struct {
	idf       map[string]float64
	documents int
}

// BuildIDFIndex computes idf(ing) = log10(N / df(ing)) over items, with df
// counting the items that contain the ingredient at least once.
func BuildIDFIndex(items []*models.Item) *IDFIndex {
	df := make(map[string]int)
	for _, item := range items {
		seen := make(map[string]struct{}, len(item.Ingredients))
		for _, name := range item.IngredientNames() {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			df[name]++
		}
	}

	n := float64(len(items))
	idf := make(map[string]float64, len(df))
	for name, count := range df {
		idf[name] = math.Log10(n / float64(count))
	}
	return &IDFIndex{idf: idf, documents: len(items)}
}

// IDF returns the weight of an ingredient. Unknown ingredients weigh 0.
func (x *IDFIndex) IDF(ingredient string) float64 {
	return x.idf[ingredient]
}

// Len returns the number of distinct ingredients.
func (x *IDFIndex) Len() int {
	return len(x.idf)
}

// Documents returns the number of items the index was built from.
func (x *IDFIndex) Documents() int {
	return x.documents
}

// termWeight is one non-empty dimension of a sparse vector.
type termWeight struct {
	term   string
	weight float64
}

// termVector is a sparse vector sorted by term with unique terms.
type termVector []termWeight

func newTermVector(weights map[string]float64) termVector {
	vec := make(termVector, 0, len(weights))
	for term, w := range weights {
		vec = append(vec, termWeight{term: term, weight: w})
	}
	slices.SortFunc(vec, func(a, b termWeight) int { return cmp.Compare(a.term, b.term) })
	return vec
}

// itemVector returns the TF-IDF vector of an item's ingredients. Each
// distinct ingredient weighs (1/len(ingredients)) * idf, where the length
// counts repeated ingredients.
func (x *IDFIndex) itemVector(item *models.Item) termVector {
	if len(item.Ingredients) == 0 {
		return nil
	}
	tf := 1 / float64(len(item.Ingredients))

	weights := make(map[string]float64, len(item.Ingredients))
	for _, ing := range item.Ingredients {
		weights[ing.Name] = tf * x.IDF(ing.Name)
	}
	return newTermVector(weights)
}

// termCosine merges two sorted sparse vectors. Terms missing on one side
// contribute only to that side's norm.
func termCosine(a, b termVector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, normA, normB float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := cmp.Compare(a[i].term, b[j].term); {
		case c == 0:
			dot += a[i].weight * b[j].weight
			i++
			j++
		case c < 0:
			i++
		default:
			j++
		}
	}
	for _, t := range a {
		normA += t.weight * t.weight
	}
	for _, t := range b {
		normB += t.weight * t.weight
	}
	return cosine(dot, normA, normB)
}

// IngredientCosine computes cosine similarity between two items' TF-IDF
// ingredient vectors. Self comparison scores 0.
func IngredientCosine(idf *IDFIndex, a, b *models.Item) float64 {
	if a.ID == b.ID {
		return 0
	}
	return termCosine(idf.itemVector(a), idf.itemVector(b))
}
