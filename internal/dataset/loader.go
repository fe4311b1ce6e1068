// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/forkcast/internal/validation"
)

// Load decodes and validates a dataset. Unknown fields are rejected so a
// misspelled key fails loudly instead of importing empty values.
func Load(r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	ds, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Validate checks field constraints and that ids are unique within the file.
// References to ids outside the file are checked at import time against the
// store.
func (d *Dataset) Validate() error {
	if verr := validation.ValidateStruct(d); verr != nil {
		return fmt.Errorf("invalid dataset: %w", verr)
	}

	seen := make(map[int64]struct{}, len(d.Users))
	for i, u := range d.Users {
		if _, dup := seen[u.ID]; dup {
			return fmt.Errorf("invalid dataset: users[%d]: duplicate user id %d", i, u.ID)
		}
		seen[u.ID] = struct{}{}
	}

	clear(seen)
	for i, it := range d.Items {
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("invalid dataset: items[%d]: duplicate item id %d", i, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}
