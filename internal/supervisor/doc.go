// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package supervisor runs the long-lived services of a scheduled deployment
under a suture v4 supervisor tree.

# Overview

	RootSupervisor ("forkcast")
	├── PipelineSupervisor ("pipeline-layer")
	│   └── PipelineService
	└── OpsSupervisor ("ops-layer")
	    └── HTTPServerService (if metrics.enabled)

Each layer counts failures on its own, so a crash looping ops server does
not put the scheduler into backoff.

Batch mode (schedule.enabled=false) does not use this package: the command
runs the pipeline once and exits.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddPipelineService(services.NewPipelineService(pipeline, cfg, logger))
	tree.AddOpsService(services.NewHTTPServerService(server, 10*time.Second))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Supervisor events (service failures, restarts, backoff) are logged through
the sutureslog hook, which the logging package bridges to zerolog.

# Thread Safety

SupervisorTree methods may be called from any goroutine. Services are added
before Serve.
*/
package supervisor
