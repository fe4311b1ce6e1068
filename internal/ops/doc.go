// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package ops serves the health, readiness, status and metrics endpoints of
// a scheduled deployment. It exposes no recommendation data.
package ops
