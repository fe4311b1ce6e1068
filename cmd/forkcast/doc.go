// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Command forkcast recomputes recipe recommendations for every user and recipe
in the configured store.

# Modes

Batch mode (default) runs the pipeline once and exits. The exit status is 0
when every stage completed and 1 otherwise; the failing stage is logged with
the run id.

	STORE_BACKEND=badger BADGER_PATH=/data/forkcast forkcast

Scheduled mode (SCHEDULE_ENABLED=true) keeps running, starts a pipeline run
every SCHEDULE_INTERVAL and serves the ops endpoints:

	GET /healthz   liveness
	GET /readyz    store reachable
	GET /status    last run report
	GET /metrics   Prometheus metrics

Seeding (SEED_PATH=seed.json) imports a JSON dataset before the first run.
With SEED_ONLY=true the command exits after the import.

# Startup Order

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console, to stdout
 3. Store: memory, BadgerDB or Redis
 4. Dataset import (optional)
 5. Pipeline: one run, or the suture supervisor tree in scheduled mode

# Configuration

Environment variables override config.yaml (CONFIG_PATH selects another
file). The most common ones:

	LOG_LEVEL            trace, debug, info, warn, error or off (default info)
	LOG_FORMAT           json or console (default json)
	STORE_BACKEND        memory, badger or redis (default badger)
	BADGER_PATH          BadgerDB directory (default /data/forkcast)
	REDIS_ADDR           host:port (default 127.0.0.1:6379)
	PIPELINE_WORKERS     concurrent entity workers (default NumCPU)
	SCHEDULE_ENABLED     run continuously (default false)
	SCHEDULE_INTERVAL    time between runs (default 6h)
	METRICS_ADDR         ops server address (default 0.0.0.0:9464)

# Signal Handling

SIGINT and SIGTERM cancel the run in progress. Stages stop dispatching new
records; writes already in flight complete. In scheduled mode the ops
server is shut down gracefully.
*/
package main
