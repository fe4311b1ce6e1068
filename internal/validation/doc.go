// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide so struct metadata is
// cached once. Field paths in errors use koanf tag names for configuration
// structs and json tag names for dataset records, so messages point at the
// key the operator actually wrote:
//
//	store.badger.path is required when Backend badger
//	users[3].ratings[0].value must be less than or equal to 5
//
// # Usage
//
//	if verr := validation.ValidateStruct(cfg); verr != nil {
//	    return fmt.Errorf("invalid configuration: %w", verr)
//	}
//
// ValidateStruct returns a *Errors rather than error; compare it against nil
// before converting it, otherwise a nil pointer becomes a non-nil error.
package validation
