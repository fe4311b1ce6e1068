// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package algorithms

import (
	"github.com/tomtom215/forkcast/internal/models"
)

// Profile represents a user's content preferences, built from the items the
// user favorited or rated highly ("good items").
//
// Items are scored against a profile as
//
//	score = cos(Tags, tagVector(item)) + cos(ingredientWeights, tfidf(item))
//
// where ingredientWeights[ing] = (count[ing] / Σcount) * idf(ing).
type Profile struct {
	// Tags is the average binary tag vector of the good items.
	Tags []float64

	// Ingredients counts ingredient occurrences across the good items.
	// Counts stay raw; idf weighting happens at scoring time.
	Ingredients map[string]int

	good map[int64]struct{}
}

// BuildProfile builds a profile from the user's good items. It returns nil
// when there are none, and such users get no content-based predictions.
func BuildProfile(good []*models.Item, space *TagSpace) *Profile {
	if len(good) == 0 {
		return nil
	}

	p := &Profile{
		Tags:        make([]float64, space.Len()),
		Ingredients: make(map[string]int),
		good:        make(map[int64]struct{}, len(good)),
	}
	for _, item := range good {
		p.good[item.ID] = struct{}{}
		for i, v := range space.Vector(item.Tags) {
			p.Tags[i] += v
		}
		for _, ing := range item.Ingredients {
			p.Ingredients[ing.Name]++
		}
	}

	n := float64(len(good))
	for i := range p.Tags {
		p.Tags[i] /= n
	}
	return p
}

// Contains reports whether the item is one of the profile's good items.
func (p *Profile) Contains(itemID int64) bool {
	_, ok := p.good[itemID]
	return ok
}

func (p *Profile) ingredientVector(idf *IDFIndex) termVector {
	total := 0
	for _, c := range p.Ingredients {
		total += c
	}
	if total == 0 {
		return nil
	}

	weights := make(map[string]float64, len(p.Ingredients))
	for name, c := range p.Ingredients {
		weights[name] = float64(c) / float64(total) * idf.IDF(name)
	}
	return newTermVector(weights)
}

// PredictContent scores every item outside the profile's good items and
// returns the top n sorted descending. A nil profile yields nil.
func PredictContent(p *Profile, items []*models.Item, f *ItemFeatures, n int) []models.Prediction {
	if p == nil {
		return nil
	}

	ingVec := p.ingredientVector(f.IDF())
	scored := make([]ScoredID, 0, len(items))
	for _, item := range items {
		if p.Contains(item.ID) {
			continue
		}
		feat := f.lookup(item)
		score := VectorCosine(p.Tags, feat.tags) + termCosine(ingVec, feat.ingredients)
		scored = append(scored, ScoredID{ID: item.ID, Score: score})
	}

	top := TopN(scored, n)
	preds := make([]models.Prediction, len(top))
	for i, s := range top {
		preds[i] = models.Prediction{ItemID: s.ID, Score: s.Score}
	}
	return preds
}
