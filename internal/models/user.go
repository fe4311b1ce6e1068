// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package models

import (
	"slices"
	"time"
)

// Rating is a single user rating of a recipe.
// A user may rate the same item more than once; lookups use the first rating.
type Rating struct {
	ItemID    int64     `json:"item_id" validate:"gt=0"`
	Value     float64   `json:"value" validate:"gte=0,lte=5"`
	Timestamp time.Time `json:"timestamp"`
}

// SimilarUser is one entry of a user's neighborhood.
type SimilarUser struct {
	UserID int64   `json:"user_id"`
	Score  float64 `json:"score"`
}

// Prediction is one entry of a user's predicted list.
type Prediction struct {
	ItemID int64   `json:"item_id"`
	Score  float64 `json:"score"`
}

// User is a platform member and their activity.
type User struct {
	ID        int64    `json:"id" validate:"gt=0"`
	Name      string   `json:"name,omitempty"`
	Ratings   []Rating `json:"ratings" validate:"dive"`
	Favorites []int64  `json:"favorites"`

	// Derived fields.
	AvgRating    float64       `json:"avg_rating"`
	SimilarUsers []SimilarUser `json:"similar_users"`
	Predicted    []Prediction  `json:"predicted"`
}

// Rating returns the user's first rating of the item.
func (u *User) Rating(itemID int64) (float64, bool) {
	for _, r := range u.Ratings {
		if r.ItemID == itemID {
			return r.Value, true
		}
	}
	return 0, false
}

// HasRated reports whether the user rated the item at least once.
func (u *User) HasRated(itemID int64) bool {
	_, ok := u.Rating(itemID)
	return ok
}

// HasFavorited reports whether the item is among the user's favorites.
func (u *User) HasFavorited(itemID int64) bool {
	return slices.Contains(u.Favorites, itemID)
}

// GoodItems returns the union of the user's favorites and the items they
// rated at or above minRating, deduplicated and sorted by id.
func (u *User) GoodItems(minRating float64) []int64 {
	set := make(map[int64]struct{}, len(u.Favorites)+len(u.Ratings))
	for _, id := range u.Favorites {
		set[id] = struct{}{}
	}
	for _, r := range u.Ratings {
		if r.Value >= minRating {
			set[r.ItemID] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ClearDerived removes the neighborhood and the predicted list.
func (u *User) ClearDerived() {
	u.SimilarUsers = nil
	u.Predicted = nil
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Ratings = slices.Clone(u.Ratings)
	c.Favorites = slices.Clone(u.Favorites)
	c.SimilarUsers = slices.Clone(u.SimilarUsers)
	c.Predicted = slices.Clone(u.Predicted)
	return &c
}
