// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package store provides the persistence contract used by the pipeline and
// three implementations of it.
//
// # Backends
//
//   - memory: maps behind a RWMutex. Used by tests and dry runs.
//   - badger: embedded BadgerDB (default). One JSON document per key, keys
//     zero-padded so prefix scans come back in id order.
//   - redis: a shared Redis instance. JSON string keys plus id index sets;
//     full scans use SMEMBERS followed by batched MGET.
//
// # Errors
//
// Every failure surfaces as a *DataAccessError carrying the operation and
// record id. Lookup misses wrap ErrNotFound:
//
//	user, err := st.GetUser(ctx, 42)
//	if store.IsNotFound(err) {
//	    // no such user
//	}
//
// The pipeline treats every DataAccessError as fatal.
//
// # Derived Fields
//
// Save operations replace the whole record, so a derived list is always
// written in one piece. ClearDerivedFields resets similar users, predictions,
// similar items and the three trending lists; it keeps the tag vocabulary,
// average ratings and interesting scores.
package store
