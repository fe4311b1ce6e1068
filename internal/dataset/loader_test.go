// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validSeed = `{
  "users": [
    {"id": 1, "name": "ana", "ratings": [{"item_id": 10, "value": 4.5}], "favorites": [11]},
    {"id": 2, "ratings": [], "favorites": []}
  ],
  "items": [
    {"id": 10, "title": "Brownies", "tags": ["dessert", "baked"],
     "ingredients": [{"ingredient": "cocoa", "amount": "50g"}, {"ingredient": "flour"}]},
    {"id": 11, "title": "Lemonade", "tags": ["drink"], "ingredients": [{"ingredient": "lemon"}]}
  ]
}`

func TestLoad(t *testing.T) {
	t.Parallel()

	ds, err := Load(strings.NewReader(validSeed))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(ds.Users) != 2 || len(ds.Items) != 2 {
		t.Fatalf("loaded %d users, %d items; want 2, 2", len(ds.Users), len(ds.Items))
	}
	if v, ok := ds.Users[0].Rating(10); !ok || v != 4.5 {
		t.Errorf("user 1 rating of 10 = %v, %v; want 4.5, true", v, ok)
	}
	if got := ds.Items[0].IngredientNames(); len(got) != 2 || got[0] != "cocoa" {
		t.Errorf("item 10 ingredients = %v", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "malformed json",
			input:   `{"users": [`,
			wantErr: "decode dataset",
		},
		{
			name:    "unknown field",
			input:   `{"users": [], "items": [], "recipes": []}`,
			wantErr: "decode dataset",
		},
		{
			name:    "zero user id",
			input:   `{"users": [{"id": 0}], "items": []}`,
			wantErr: "users[0].id",
		},
		{
			name:    "rating above range",
			input:   `{"users": [{"id": 1, "ratings": [{"item_id": 2, "value": 6}]}], "items": [{"id": 2}]}`,
			wantErr: "users[0].ratings[0].value",
		},
		{
			name:    "negative rating",
			input:   `{"users": [{"id": 1, "ratings": [{"item_id": 2, "value": -1}]}], "items": [{"id": 2}]}`,
			wantErr: "users[0].ratings[0].value",
		},
		{
			name:    "ingredient without name",
			input:   `{"users": [], "items": [{"id": 2, "ingredients": [{"amount": "1 cup"}]}]}`,
			wantErr: "items[0].ingredients[0].ingredient",
		},
		{
			name:    "duplicate user id",
			input:   `{"users": [{"id": 1}, {"id": 1}], "items": []}`,
			wantErr: "duplicate user id 1",
		},
		{
			name:    "duplicate item id",
			input:   `{"users": [], "items": [{"id": 3}, {"id": 4}, {"id": 3}]}`,
			wantErr: "items[2]: duplicate item id 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	if err := os.WriteFile(path, []byte(validSeed), 0o600); err != nil {
		t.Fatal(err)
	}

	ds, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(ds.Items) != 2 {
		t.Errorf("items = %d, want 2", len(ds.Items))
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadFile() on missing file expected error")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"users": [{"id": 1}, {"id": 1}]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = LoadFile(bad)
	if err == nil || !strings.Contains(err.Error(), bad) {
		t.Errorf("LoadFile() error = %v, want it to name the file", err)
	}
}
