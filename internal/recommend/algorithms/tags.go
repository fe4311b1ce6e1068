// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package algorithms

import (
	"github.com/tomtom215/forkcast/internal/models"
)

// TagSpace fixes the layout of binary tag vectors for one run.
// Dimension i corresponds to the i-th distinct tag of the vocabulary.
type TagSpace struct {
	tags  []string
	index map[string]int
}

// NewTagSpace builds a space from the global vocabulary. Duplicate and empty
// tags are ignored.
func NewTagSpace(vocabulary []string) *TagSpace {
	s := &TagSpace{
		tags:  make([]string, 0, len(vocabulary)),
		index: make(map[string]int, len(vocabulary)),
	}
	for _, tag := range vocabulary {
		if tag == "" {
			continue
		}
		if _, ok := s.index[tag]; ok {
			continue
		}
		s.index[tag] = len(s.tags)
		s.tags = append(s.tags, tag)
	}
	return s
}

// Len returns the number of dimensions.
func (s *TagSpace) Len() int {
	return len(s.tags)
}

// Vector returns the binary presence vector of tags. Tags outside the
// vocabulary have no dimension and are ignored.
func (s *TagSpace) Vector(tags []string) []float64 {
	vec := make([]float64, len(s.tags))
	for _, tag := range tags {
		if i, ok := s.index[tag]; ok {
			vec[i] = 1
		}
	}
	return vec
}

// TagCosine computes cosine similarity between two items' tag vectors.
// Self comparison and items without tags score 0.
func TagCosine(space *TagSpace, a, b *models.Item) float64 {
	if a.ID == b.ID || len(a.Tags) == 0 || len(b.Tags) == 0 {
		return 0
	}
	return VectorCosine(space.Vector(a.Tags), space.Vector(b.Tags))
}
