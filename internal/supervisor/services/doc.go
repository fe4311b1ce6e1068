// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package services provides suture.Service wrappers for the scheduled mode.

# Services

PipelineService runs recommend.Pipeline on a ticker:

	svc := services.NewPipelineService(pipeline, services.PipelineServiceConfig{
	    Interval:   6 * time.Hour,
	    RunOnStart: true,
	    RunTimeout: 2 * time.Hour,
	}, logger)

A failed run is logged and does not make Serve return, so the supervisor
never restarts the scheduler into an immediate RunOnStart run. LastRun
exposes the most recent outcome to the ops server.

HTTPServerService runs an *http.Server and shuts it down gracefully when
the supervisor stops it.

Both services return ctx.Err() on shutdown, which suture treats as a
normal stop.
*/
package services
