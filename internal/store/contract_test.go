// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package store

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/tomtom215/forkcast/internal/models"
)

// runStoreContract exercises the Store contract against a fresh, empty store.
// Each backend test calls it with its own constructor.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()

	t.Run("missing user is not found", func(t *testing.T) {
		st := newStore(t)
		_, err := st.GetUser(context.Background(), 404)
		if !IsNotFound(err) {
			t.Fatalf("GetUser() error = %v, want not found", err)
		}
		if !IsDataAccess(err) {
			t.Errorf("GetUser() error = %T, want *DataAccessError", err)
		}
	})

	t.Run("missing item is not found", func(t *testing.T) {
		st := newStore(t)
		_, err := st.GetItem(context.Background(), 404)
		if !IsNotFound(err) {
			t.Fatalf("GetItem() error = %v, want not found", err)
		}
	})

	t.Run("empty aggregate", func(t *testing.T) {
		st := newStore(t)
		agg, err := st.GetAggregate(context.Background())
		if err != nil {
			t.Fatalf("GetAggregate() error = %v", err)
		}
		if len(agg.Tags) != 0 || len(agg.TopFavorites) != 0 {
			t.Errorf("GetAggregate() = %+v, want empty", agg)
		}
	})

	t.Run("save and get round trip", func(t *testing.T) {
		st := newStore(t)
		ctx := context.Background()

		user := &models.User{
			ID:           7,
			Ratings:      []models.Rating{{ItemID: 1, Value: 4, Timestamp: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}},
			Favorites:    []int64{1},
			AvgRating:    4,
			SimilarUsers: []models.SimilarUser{{UserID: 8, Score: 0.5}},
			Predicted:    []models.Prediction{{ItemID: 2, Score: 3.5}},
		}
		item := &models.Item{
			ID:           1,
			Tags:         []string{"vegan"},
			Ingredients:  []models.Ingredient{{Name: "tofu", Amount: "200 g"}},
			Favorites:    []int64{7},
			CreatedAt:    time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
			SimilarItems: []models.SimilarItem{{ItemID: 2, Score: 0.7, Kind: models.SimilarityKindIngredient}},
		}
		if err := st.SaveUser(ctx, user); err != nil {
			t.Fatalf("SaveUser() error = %v", err)
		}
		if err := st.SaveItem(ctx, item); err != nil {
			t.Fatalf("SaveItem() error = %v", err)
		}

		gotUser, err := st.GetUser(ctx, 7)
		if err != nil {
			t.Fatalf("GetUser() error = %v", err)
		}
		if gotUser.AvgRating != 4 || len(gotUser.SimilarUsers) != 1 || len(gotUser.Predicted) != 1 {
			t.Errorf("GetUser() = %+v, derived fields not persisted", gotUser)
		}
		if v, ok := gotUser.Rating(1); !ok || v != 4 {
			t.Errorf("GetUser().Rating(1) = (%v, %v), want (4, true)", v, ok)
		}

		gotItem, err := st.GetItem(ctx, 1)
		if err != nil {
			t.Fatalf("GetItem() error = %v", err)
		}
		if !gotItem.CreatedAt.Equal(item.CreatedAt) {
			t.Errorf("GetItem().CreatedAt = %v, want %v", gotItem.CreatedAt, item.CreatedAt)
		}
		if len(gotItem.SimilarItems) != 1 || gotItem.SimilarItems[0].Kind != models.SimilarityKindIngredient {
			t.Errorf("GetItem().SimilarItems = %+v", gotItem.SimilarItems)
		}
	})

	t.Run("save replaces whole record", func(t *testing.T) {
		st := newStore(t)
		ctx := context.Background()

		if err := st.SaveUser(ctx, &models.User{ID: 1, Predicted: []models.Prediction{{ItemID: 1}, {ItemID: 2}}}); err != nil {
			t.Fatalf("SaveUser() error = %v", err)
		}
		if err := st.SaveUser(ctx, &models.User{ID: 1, Predicted: []models.Prediction{{ItemID: 3}}}); err != nil {
			t.Fatalf("SaveUser() error = %v", err)
		}
		got, err := st.GetUser(ctx, 1)
		if err != nil {
			t.Fatalf("GetUser() error = %v", err)
		}
		if len(got.Predicted) != 1 || got.Predicted[0].ItemID != 3 {
			t.Errorf("Predicted = %+v, want only item 3", got.Predicted)
		}
	})

	t.Run("all records sorted by id", func(t *testing.T) {
		st := newStore(t)
		ctx := context.Background()

		for _, id := range []int64{30, 2, 100, 11} {
			if err := st.SaveUser(ctx, &models.User{ID: id}); err != nil {
				t.Fatalf("SaveUser(%d) error = %v", id, err)
			}
			if err := st.SaveItem(ctx, &models.Item{ID: id}); err != nil {
				t.Fatalf("SaveItem(%d) error = %v", id, err)
			}
		}

		users, err := st.AllUsers(ctx)
		if err != nil {
			t.Fatalf("AllUsers() error = %v", err)
		}
		var userIDs []int64
		for _, u := range users {
			userIDs = append(userIDs, u.ID)
		}
		if want := []int64{2, 11, 30, 100}; !slices.Equal(userIDs, want) {
			t.Errorf("AllUsers() ids = %v, want %v", userIDs, want)
		}

		items, err := st.AllItems(ctx)
		if err != nil {
			t.Fatalf("AllItems() error = %v", err)
		}
		var itemIDs []int64
		for _, it := range items {
			itemIDs = append(itemIDs, it.ID)
		}
		if want := []int64{2, 11, 30, 100}; !slices.Equal(itemIDs, want) {
			t.Errorf("AllItems() ids = %v, want %v", itemIDs, want)
		}
	})

	t.Run("clear derived fields", func(t *testing.T) {
		st := newStore(t)
		ctx := context.Background()

		if err := st.SaveUser(ctx, &models.User{
			ID:           1,
			Ratings:      []models.Rating{{ItemID: 1, Value: 5}},
			AvgRating:    5,
			SimilarUsers: []models.SimilarUser{{UserID: 2, Score: 1}},
			Predicted:    []models.Prediction{{ItemID: 2, Score: 5}},
		}); err != nil {
			t.Fatalf("SaveUser() error = %v", err)
		}
		if err := st.SaveItem(ctx, &models.Item{
			ID:               1,
			AvgRating:        5,
			InterestingScore: 0.2,
			SimilarItems:     []models.SimilarItem{{ItemID: 2, Score: 1, Kind: models.SimilarityKindTag}},
		}); err != nil {
			t.Fatalf("SaveItem() error = %v", err)
		}
		if err := st.SaveAggregate(ctx, &models.Aggregate{
			Tags:           []string{"vegan"},
			TopFavorites:   []int64{1},
			TopRated:       []int64{1},
			TopInteresting: []int64{1},
		}); err != nil {
			t.Fatalf("SaveAggregate() error = %v", err)
		}

		if err := st.ClearDerivedFields(ctx); err != nil {
			t.Fatalf("ClearDerivedFields() error = %v", err)
		}

		u, err := st.GetUser(ctx, 1)
		if err != nil {
			t.Fatalf("GetUser() error = %v", err)
		}
		if len(u.SimilarUsers) != 0 || len(u.Predicted) != 0 {
			t.Errorf("user derived lists not cleared: %+v", u)
		}
		if len(u.Ratings) != 1 || u.AvgRating != 5 {
			t.Errorf("user raw data or average changed: %+v", u)
		}

		it, err := st.GetItem(ctx, 1)
		if err != nil {
			t.Fatalf("GetItem() error = %v", err)
		}
		if len(it.SimilarItems) != 0 {
			t.Errorf("item similar items not cleared: %+v", it.SimilarItems)
		}
		if it.AvgRating != 5 {
			t.Errorf("item AvgRating = %v, want 5 (kept)", it.AvgRating)
		}

		agg, err := st.GetAggregate(ctx)
		if err != nil {
			t.Fatalf("GetAggregate() error = %v", err)
		}
		if len(agg.TopFavorites)+len(agg.TopRated)+len(agg.TopInteresting) != 0 {
			t.Errorf("rankings not cleared: %+v", agg)
		}
		if !slices.Equal(agg.Tags, []string{"vegan"}) {
			t.Errorf("vocabulary = %v, want [vegan]", agg.Tags)
		}
	})
}
