// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	// runIDKey carries the id of the pipeline run a context belongs to.
	runIDKey contextKey = "run_id"

	// stageKey carries the name of the running pipeline stage.
	stageKey contextKey = "stage"
)

// GenerateRunID creates a new unique run ID.
//
//	runID := logging.GenerateRunID()
//	ctx = logging.ContextWithRunID(ctx, runID)
func GenerateRunID() string {
	return uuid.New().String()
}

// ContextWithRunID returns a context carrying the given run ID.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext returns the run ID, or "" if none is set.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithStage returns a context carrying the running stage name.
func ContextWithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name, or "" if none is set.
func StageFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(stageKey).(string); ok {
		return s
	}
	return ""
}

// Ctx returns a logger with the run_id and stage fields of ctx attached.
//
//	logging.Ctx(ctx).Info().Int("users", n).Msg("stage complete")
//	// {"level":"info","run_id":"...","stage":"similar-users","users":42,"message":"stage complete"}
func Ctx(ctx context.Context) *zerolog.Logger {
	l := CtxWith(ctx).Logger()
	return &l
}

// CtxWith returns a child context of the global logger with the context
// fields pre-populated.
//
//	logger := logging.CtxWith(ctx).Str("component", "dataset").Logger()
func CtxWith(ctx context.Context) zerolog.Context {
	logCtx := With()

	if id := RunIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("run_id", id)
	}
	if stage := StageFromContext(ctx); stage != "" {
		logCtx = logCtx.Str("stage", stage)
	}
	return logCtx
}

// WithComponent creates a child of the global logger with a component field.
//
//	logger := logging.WithComponent("dataset")
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
