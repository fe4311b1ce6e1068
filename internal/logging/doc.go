// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package logging provides zerolog-based structured logging for Forkcast.
//
// A single global logger is configured once at startup and shared by every
// package. JSON output is the default; console output is available for
// local runs.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:     "info",
//	    Format:    "json",
//	    Timestamp: true,
//	})
//
//	logging.Info().Str("backend", "badger").Msg("store opened")
//	logging.Err(err).Msg("pipeline run failed")
//
// # Configuration
//
// The config package maps these keys onto Config:
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Run Context
//
// Every pipeline run carries its run ID in the context. Stage code logs
// through Ctx so each line can be traced back to the run and stage:
//
//	ctx = logging.ContextWithRunID(ctx, runID)
//	ctx = logging.ContextWithStage(ctx, "similar-users")
//	logging.Ctx(ctx).Debug().Int("users", n).Msg("stage complete")
//
// # Component Loggers
//
// Long-lived components hold a child logger with a component field:
//
//	logger := logging.WithComponent("dataset")
//
// # slog Adapter
//
// The supervisor tree reports service events through sutureslog, which
// needs an *slog.Logger. NewSlogLogger returns one backed by zerolog:
//
//	hook := (&sutureslog.Handler{Logger: logging.NewSlogLogger("supervisor")}).MustHook()
//
// # Testing
//
// Components that take a zerolog.Logger are tested with one writing to a
// buffer:
//
//	var buf bytes.Buffer
//	p := recommend.NewPipeline(st, cfg, zerolog.New(&buf))
//
// All exported functions are safe for concurrent use.
package logging
