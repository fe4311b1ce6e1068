// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package dataset loads seed files of users and recipes into a store.

A seed file is a JSON document with a users array and an items array using
the same field names as the stored records. Derived fields may be present
and are written as given; the next pipeline run overwrites them.

	ds, err := dataset.LoadFile("seed.json")
	if err != nil {
		return err
	}
	stats, err := dataset.NewImporter(st).Import(ctx, ds)

Loading rejects unknown fields, out of range ratings, non-positive ids and
duplicate ids. Import then resolves every rating and favorite against the
file and the store, and fails with a *ReferenceError before writing anything
if one points nowhere.

Import keeps favorites symmetric and appends new item tags to the
aggregate vocabulary. The vocabulary is never reordered, so tag vector
dimensions stay stable across imports.
*/
package dataset
