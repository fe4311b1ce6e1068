// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package dataset

import (
	"time"

	"github.com/tomtom215/forkcast/internal/models"
)

// Dataset is the seed file layout.
//
//	{
//	  "users": [{"id": 1, "ratings": [{"item_id": 2, "value": 4}], "favorites": [2]}],
//	  "items": [{"id": 2, "tags": ["dessert"], "ingredients": [{"ingredient": "flour", "amount": "2 cups"}]}]
//	}
type Dataset struct {
	Users []*models.User `json:"users" validate:"dive,required"`
	Items []*models.Item `json:"items" validate:"dive,required"`
}

// ImportStats holds statistics about an import operation.
type ImportStats struct {
	// Users and Items are the number of records written from the file.
	Users int `json:"users"`
	Items int `json:"items"`

	// Touched is the number of records already in the store that were
	// rewritten to keep favorites consistent with the file.
	Touched int `json:"touched"`

	// TagsAdded is the number of tags appended to the vocabulary.
	TagsAdded int `json:"tags_added"`

	// FavoritesLinked is the number of favorite links added to the other
	// side of a user/item pair.
	FavoritesLinked int `json:"favorites_linked"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Duration returns the duration of the import operation.
func (s *ImportStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}
