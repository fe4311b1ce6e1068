// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package metrics provides Prometheus metrics for the recommendation pipeline.

Metrics are registered on the default registry through promauto and exposed
by the ops server in scheduled mode:

	curl http://localhost:9464/metrics

# Available Metrics

Pipeline:
  - forkcast_pipeline_stage_duration_seconds{stage}
  - forkcast_pipeline_stage_entities_total{stage}
  - forkcast_pipeline_stage_errors_total{stage}
  - forkcast_pipeline_runs_total{status}
  - forkcast_pipeline_run_duration_seconds
  - forkcast_pipeline_last_success_timestamp
  - forkcast_pipeline_running

Dataset:
  - forkcast_dataset_records_imported_total{kind}

Ops server:
  - forkcast_ops_requests_total{method,route,status}
  - forkcast_ops_request_duration_seconds{method,route}

# Usage

Callers use the Record helpers rather than the collectors directly:

	start := time.Now()
	n, err := stage(ctx)
	metrics.RecordPipelineStage("similar-users", time.Since(start), n, err)
*/
package metrics
