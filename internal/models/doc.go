// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package models defines the records read and written by the Forkcast pipeline.

There are three persisted record types:

  - User: raw ratings and favorites plus the derived average rating,
    similar-user neighborhood and predicted recipe list
  - Item: a recipe with its tags, ingredients, favoriting users and creation
    time plus the derived average rating, interesting score and similar-item
    neighborhood
  - Aggregate: the single platform-wide record holding the tag vocabulary and
    the trending lists (top favorites, top rated, top interesting)

Raw fields are owned by the platform that writes recipes, ratings and
favorites. Derived fields are owned by the pipeline and are rebuilt from
scratch on every run; ClearDerived resets the fields the clear stage removes.

All records serialize with goccy/go-json using snake_case field names so the
badger and redis stores share one on-disk representation.
*/
package models
