// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package algorithms

import (
	"slices"
	"testing"

	"github.com/tomtom215/forkcast/internal/models"
)

func TestBuildProfile(t *testing.T) {
	t.Parallel()

	space := NewTagSpace([]string{"vegan", "dessert", "soup"})
	good := []*models.Item{
		{ID: 1, Tags: []string{"vegan"}, Ingredients: []models.Ingredient{{Name: "tofu"}, {Name: "salt"}}},
		{ID: 2, Tags: []string{"vegan", "dessert"}, Ingredients: []models.Ingredient{{Name: "salt"}, {Name: "salt"}}},
	}

	p := BuildProfile(good, space)
	if p == nil {
		t.Fatal("BuildProfile() = nil")
	}
	if want := []float64{1, 0.5, 0}; !slices.Equal(p.Tags, want) {
		t.Errorf("Tags = %v, want %v", p.Tags, want)
	}
	if p.Ingredients["salt"] != 3 || p.Ingredients["tofu"] != 1 {
		t.Errorf("Ingredients = %v, want raw counts salt=3 tofu=1", p.Ingredients)
	}
	if !p.Contains(1) || !p.Contains(2) || p.Contains(3) {
		t.Error("Contains() does not match the good items")
	}
}

func TestBuildProfile_NoGoodItems(t *testing.T) {
	t.Parallel()

	space := NewTagSpace([]string{"vegan"})
	if p := BuildProfile(nil, space); p != nil {
		t.Errorf("BuildProfile(nil) = %+v, want nil", p)
	}

	items := []*models.Item{{ID: 1, Tags: []string{"vegan"}}}
	features := NewItemFeatures(items, space, BuildIDFIndex(items))
	if got := PredictContent(nil, items, features, 7); got != nil {
		t.Errorf("PredictContent(nil profile) = %v, want nil", got)
	}
}

func TestPredictContent(t *testing.T) {
	t.Parallel()

	ing := func(names ...string) []models.Ingredient {
		out := make([]models.Ingredient, len(names))
		for i, n := range names {
			out[i] = models.Ingredient{Name: n}
		}
		return out
	}

	items := []*models.Item{
		{ID: 1, Tags: []string{"vegan", "dessert"}, Ingredients: ing("cocoa", "dates", "flour")},
		{ID: 2, Tags: []string{"vegan", "dessert"}, Ingredients: ing("cocoa", "sugar", "flour")},
		{ID: 3, Tags: []string{"soup"}, Ingredients: ing("leek", "flour")},
		{ID: 4, Tags: []string{"vegan"}, Ingredients: ing("tofu", "flour")},
	}
	space := NewTagSpace([]string{"vegan", "dessert", "soup"})
	features := NewItemFeatures(items, space, BuildIDFIndex(items))

	p := BuildProfile(items[:1], space)
	got := PredictContent(p, items, features, 7)

	if len(got) != 3 {
		t.Fatalf("len(PredictContent()) = %d, want 3 (good item excluded)", len(got))
	}
	if got[0].ItemID != 2 {
		t.Errorf("top prediction = %d, want 2 (shared tags and cocoa)", got[0].ItemID)
	}
	if got[1].ItemID != 4 {
		t.Errorf("second prediction = %d, want 4 (shared vegan tag)", got[1].ItemID)
	}
	if got[2].ItemID != 3 || got[2].Score != 0 {
		t.Errorf("last prediction = %+v, want item 3 with score 0", got[2])
	}
	for _, pred := range got {
		if pred.ItemID == 1 {
			t.Error("PredictContent() returned a good item")
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("PredictContent() not sorted descending at %d", i)
		}
	}

	if capped := PredictContent(p, items, features, 1); len(capped) != 1 {
		t.Errorf("len(PredictContent(n=1)) = %d, want 1", len(capped))
	}
}

func TestPredictContent_UbiquitousIngredient(t *testing.T) {
	t.Parallel()

	// flour is in every item, so its idf is 0 and it adds nothing however
	// often the user liked it.
	items := []*models.Item{
		{ID: 1, Ingredients: []models.Ingredient{{Name: "flour"}, {Name: "flour"}}},
		{ID: 2, Ingredients: []models.Ingredient{{Name: "flour"}}},
		{ID: 3, Ingredients: []models.Ingredient{{Name: "flour"}}},
	}
	space := NewTagSpace(nil)
	features := NewItemFeatures(items, space, BuildIDFIndex(items))

	p := BuildProfile(items[:1], space)
	for _, pred := range PredictContent(p, items, features, 7) {
		if pred.Score != 0 {
			t.Errorf("score for item %d = %v, want 0", pred.ItemID, pred.Score)
		}
	}
}
