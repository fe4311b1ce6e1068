// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/forkcast/internal/config"
	"github.com/tomtom215/forkcast/internal/dataset"
	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/ops"
	"github.com/tomtom215/forkcast/internal/recommend"
	"github.com/tomtom215/forkcast/internal/store"
	"github.com/tomtom215/forkcast/internal/supervisor"
	"github.com/tomtom215/forkcast/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Err(err).Msg("forkcast failed")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logOpts := cfg.LoggingOptions()
	logOpts.Output = os.Stdout
	logging.Init(logOpts)

	logging.Info().
		Str("store", cfg.Store.Backend).
		Bool("scheduled", cfg.IsScheduled()).
		Str("seed_path", cfg.Dataset.SeedPath).
		Msg("Starting Forkcast")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.StoreOptions(), logging.Logger())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	if cfg.Dataset.SeedPath != "" {
		if err := seed(ctx, st, cfg.Dataset.SeedPath); err != nil {
			return err
		}
		if cfg.Dataset.SeedOnly {
			logging.Info().Msg("Seed complete, exiting (dataset.seed_only)")
			return nil
		}
	}

	pipeline, err := recommend.NewPipeline(st, cfg.RecommendConfig(), logging.WithComponent("pipeline"))
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	if !cfg.IsScheduled() {
		return runOnce(ctx, pipeline)
	}
	return runScheduled(ctx, cfg, st, pipeline)
}

func seed(ctx context.Context, st store.Store, path string) error {
	ds, err := dataset.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	if _, err := dataset.NewImporter(st).Import(ctx, ds); err != nil {
		return fmt.Errorf("import dataset: %w", err)
	}
	return nil
}

// runOnce executes a single batch run.
func runOnce(ctx context.Context, pipeline *recommend.Pipeline) error {
	report, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}
	for _, s := range report.Stages {
		logging.Debug().
			Str("stage", s.Name).
			Int("entities", s.Entities).
			Dur("duration", s.Duration).
			Msg("Stage summary")
	}
	return nil
}

// runScheduled runs the pipeline on an interval under the supervisor tree
// until SIGINT or SIGTERM.
func runScheduled(ctx context.Context, cfg *config.Config, st store.Store, pipeline *recommend.Pipeline) error {
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	scheduler := services.NewPipelineService(pipeline, services.PipelineServiceConfig{
		Interval:   cfg.Schedule.Interval,
		RunOnStart: cfg.Schedule.RunOnStart,
		RunTimeout: cfg.Schedule.RunTimeout,
	}, logging.Logger())
	tree.AddPipelineService(scheduler)

	if cfg.Metrics.Enabled {
		server := &http.Server{
			Addr: cfg.Metrics.Addr,
			Handler: ops.NewRouter(ops.Options{
				MetricsPath: cfg.Metrics.Path,
				Store:       st,
				Status:      scheduler,
				Logger:      logging.Logger(),
			}),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
		tree.AddOpsService(services.NewHTTPServerService(server, 10*time.Second, logging.Logger()))
	}

	logging.Info().
		Dur("interval", cfg.Schedule.Interval).
		Bool("metrics", cfg.Metrics.Enabled).
		Msg("Scheduler started")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}
	logging.Info().Msg("Shutdown complete")
	return nil
}
