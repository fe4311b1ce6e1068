// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/forkcast/internal/metrics"
	"github.com/tomtom215/forkcast/internal/recommend"
)

// PipelineRunner runs the recommendation pipeline once.
type PipelineRunner interface {
	Run(ctx context.Context) (*recommend.RunReport, error)
}

// PipelineServiceConfig holds the schedule.
type PipelineServiceConfig struct {
	// Interval is the time between run starts. Default: 6h
	Interval time.Duration

	// RunOnStart runs the pipeline as soon as the service starts.
	RunOnStart bool

	// RunTimeout bounds a single run. Zero means no limit.
	RunTimeout time.Duration
}

// PipelineService runs the pipeline on a fixed interval.
//
// A failed run is logged and the schedule continues; the next tick retries
// from scratch. A tick that arrives while a run is still going is skipped.
type PipelineService struct {
	runner PipelineRunner
	config PipelineServiceConfig
	logger zerolog.Logger
	name   string

	mu      sync.RWMutex
	last    *recommend.RunReport
	lastErr error
}

// NewPipelineService creates the scheduler service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPipelineService(runner PipelineRunner, cfg PipelineServiceConfig, logger zerolog.Logger) *PipelineService {
	if cfg.Interval <= 0 {
		cfg.Interval = 6 * time.Hour
	}
	return &PipelineService{
		runner: runner,
		config: cfg,
		logger: logger.With().Str("service", "pipeline").Logger(),
		name:   "pipeline-scheduler",
	}
}

// Serve implements suture.Service.
func (s *PipelineService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("run_on_start", s.config.RunOnStart).
		Dur("interval", s.config.Interval).
		Dur("run_timeout", s.config.RunTimeout).
		Msg("pipeline scheduler starting")

	if s.config.RunOnStart {
		s.run(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("pipeline scheduler shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.logger.Debug().Msg("scheduled run triggered")
			s.run(ctx)
		}
	}
}

func (s *PipelineService) run(ctx context.Context) {
	if s.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RunTimeout)
		defer cancel()
	}

	metrics.TrackPipelineRunning(true)
	defer metrics.TrackPipelineRunning(false)

	report, err := s.runner.Run(ctx)
	if errors.Is(err, recommend.ErrRunInProgress) {
		s.logger.Warn().Msg("previous run still in progress, skipping")
		return
	}

	s.mu.Lock()
	s.last = report
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		// The pipeline already logged the stage failure with its run id.
		s.logger.Warn().Err(err).Msg("scheduled run failed, retrying next interval")
	}
}

// LastRun returns the report and error of the most recent run. Both are nil
// before the first run completes.
func (s *PipelineService) LastRun() (*recommend.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.lastErr
}

// String implements fmt.Stringer.
func (s *PipelineService) String() string {
	return s.name
}
