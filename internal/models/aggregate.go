// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package models

import "slices"

// Aggregate is the single platform-wide record.
//
// Tags is the global tag vocabulary. It only ever grows, in first-seen order,
// as recipes are added; the pipeline reads it but never rebuilds it. The
// position of a tag in Tags is its dimension in every tag vector.
type Aggregate struct {
	Tags           []string `json:"tags"`
	TopFavorites   []int64  `json:"top_favorites"`
	TopRated       []int64  `json:"top_rated"`
	TopInteresting []int64  `json:"top_interesting"`
}

// AddTags appends the tags not yet in the vocabulary and returns how many were added.
func (a *Aggregate) AddTags(tags ...string) int {
	added := 0
	for _, tag := range tags {
		if tag == "" || slices.Contains(a.Tags, tag) {
			continue
		}
		a.Tags = append(a.Tags, tag)
		added++
	}
	return added
}

// ClearRankings empties the three trending lists. The vocabulary is kept.
func (a *Aggregate) ClearRankings() {
	a.TopFavorites = nil
	a.TopRated = nil
	a.TopInteresting = nil
}

// Clone returns a deep copy of the aggregate.
func (a *Aggregate) Clone() *Aggregate {
	if a == nil {
		return nil
	}
	return &Aggregate{
		Tags:           slices.Clone(a.Tags),
		TopFavorites:   slices.Clone(a.TopFavorites),
		TopRated:       slices.Clone(a.TopRated),
		TopInteresting: slices.Clone(a.TopInteresting),
	}
}
