// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped in a DataAccessError) when a point lookup misses.
var ErrNotFound = errors.New("record not found")

// DataAccessError reports a failed store operation. It covers both an
// unreachable or failing backend and a lookup miss; the pipeline treats
// every DataAccessError as fatal for the run.
type DataAccessError struct {
	// Op is the store operation, e.g. "get user" or "clear derived fields".
	Op string

	// ID is the record id for point operations, zero otherwise.
	ID int64

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *DataAccessError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("store: %s %d: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDataAccess reports whether err is, or wraps, a DataAccessError.
func IsDataAccess(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}

// accessError wraps err as a DataAccessError unless it already is one.
func accessError(op string, id int64, err error) error {
	if err == nil {
		return nil
	}
	if IsDataAccess(err) {
		return err
	}
	return &DataAccessError{Op: op, ID: id, Err: err}
}

// notFound builds the lookup-miss error for op and id.
func notFound(op string, id int64) error {
	return &DataAccessError{Op: op, ID: id, Err: ErrNotFound}
}
