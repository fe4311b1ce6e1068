// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stage durations range from milliseconds (aggregate stages on small data)
// to tens of minutes (collaborative filtering on large data).
var stageBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 300, 900, 1800}

var (
	// Pipeline Metrics
	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forkcast_pipeline_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: stageBuckets,
		},
		[]string{"stage"},
	)

	PipelineStageEntities = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_pipeline_stage_entities_total",
			Help: "Total number of entities written by pipeline stages",
		},
		[]string{"stage"},
	)

	PipelineStageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_pipeline_stage_errors_total",
			Help: "Total number of failed pipeline stages",
		},
		[]string{"stage"},
	)

	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_pipeline_runs_total",
			Help: "Total number of pipeline runs by outcome",
		},
		[]string{"status"}, // "success", "failure"
	)

	PipelineRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "forkcast_pipeline_run_duration_seconds",
			Help:    "Duration of full pipeline runs in seconds",
			Buckets: stageBuckets,
		},
	)

	PipelineLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "forkcast_pipeline_last_success_timestamp",
			Help: "Unix timestamp of the last successful pipeline run",
		},
	)

	PipelineRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "forkcast_pipeline_running",
			Help: "1 while a scheduled pipeline run is in progress",
		},
	)

	// Dataset Metrics
	DatasetRecordsImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_dataset_records_imported_total",
			Help: "Total number of records imported from seed files",
		},
		[]string{"kind"}, // "user", "item"
	)

	// Ops Server Metrics
	OpsRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forkcast_ops_requests_total",
			Help: "Total number of ops server requests",
		},
		[]string{"method", "route", "status"},
	)

	OpsRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forkcast_ops_request_duration_seconds",
			Help:    "Duration of ops server requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordPipelineStage records one stage execution.
func RecordPipelineStage(stage string, duration time.Duration, entities int, err error) {
	PipelineStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	if entities > 0 {
		PipelineStageEntities.WithLabelValues(stage).Add(float64(entities))
	}
	if err != nil {
		PipelineStageErrors.WithLabelValues(stage).Inc()
	}
}

// RecordPipelineRun records the outcome of a full run.
func RecordPipelineRun(duration time.Duration, err error) {
	PipelineRunDuration.Observe(duration.Seconds())
	if err != nil {
		PipelineRunsTotal.WithLabelValues("failure").Inc()
		return
	}
	PipelineRunsTotal.WithLabelValues("success").Inc()
	// Update last success timestamp
	PipelineLastSuccess.Set(float64(time.Now().Unix()))
}

// TrackPipelineRunning flags a scheduled run as started or finished.
func TrackPipelineRunning(running bool) {
	if running {
		PipelineRunning.Set(1)
	} else {
		PipelineRunning.Set(0)
	}
}

// RecordDatasetImport records imported seed records.
func RecordDatasetImport(kind string, count int) {
	DatasetRecordsImported.WithLabelValues(kind).Add(float64(count))
}

// RecordOpsRequest records an ops server request.
func RecordOpsRequest(method, route, statusCode string, duration time.Duration) {
	OpsRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	OpsRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
