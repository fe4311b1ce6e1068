// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/forkcast/internal/store"
)

// isolateEnv points config discovery at an empty directory so a config.yaml
// in the package directory or the host cannot leak into the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, "")
	t.Chdir(t.TempDir())
	orig := DefaultConfigPaths
	DefaultConfigPaths = []string{"config.yaml"}
	t.Cleanup(func() { DefaultConfigPaths = orig })
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
	if cfg.Store.Backend != "badger" {
		t.Errorf("Store.Backend = %q, want badger", cfg.Store.Backend)
	}
	if cfg.Store.Badger.Path != "/data/forkcast" {
		t.Errorf("Store.Badger.Path = %q, want /data/forkcast", cfg.Store.Badger.Path)
	}
	if cfg.Pipeline.SimilarUsers != 7 || cfg.Pipeline.MaxSimilarItems != 4 {
		t.Errorf("Pipeline neighborhood = %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.Gravity != 1.8 {
		t.Errorf("Pipeline.Gravity = %v, want 1.8", cfg.Pipeline.Gravity)
	}
	if cfg.Schedule.Enabled {
		t.Error("Schedule.Enabled should be false by default")
	}
	if cfg.Schedule.Interval != 6*time.Hour {
		t.Errorf("Schedule.Interval = %v, want 6h", cfg.Schedule.Interval)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want /metrics", cfg.Metrics.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"LOG_LEVEL", "logging.level"},
		{"STORE_BACKEND", "store.backend"},
		{"BADGER_PATH", "store.badger.path"},
		{"REDIS_ADDR", "store.redis.addr"},
		{"REDIS_KEY_PREFIX", "store.redis.key_prefix"},
		{"PIPELINE_WORKERS", "pipeline.workers"},
		{"PIPELINE_GRAVITY", "pipeline.gravity"},
		{"SCHEDULE_INTERVAL", "schedule.interval"},
		{"METRICS_ADDR", "metrics.addr"},
		{"SEED_PATH", "dataset.seed_path"},
		{"seed_path", "dataset.seed_path"},

		// Unmapped variables are skipped
		{"HOME", ""},
		{"PATH", ""},
		{"PIPELINE_UNKNOWN", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Backend != "badger" {
		t.Errorf("Store.Backend = %q, want badger", cfg.Store.Backend)
	}
	if cfg.Schedule.RunTimeout != 2*time.Hour {
		t.Errorf("Schedule.RunTimeout = %v, want 2h", cfg.Schedule.RunTimeout)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	isolateEnv(t)

	path := writeConfig(t, `
logging:
  level: debug
store:
  backend: redis
  redis:
    addr: redis.internal:6379
    db: 2
pipeline:
  workers: 3
  user_similarity: euclidean
  gravity: 1.5
schedule:
  enabled: true
  interval: 30m
  run_timeout: 10m
dataset:
  seed_path: /seed/recipes.json
`)
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PIPELINE_GRAVITY", "2.5")
	t.Setenv("REDIS_DB", "4")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v, want debug/console", cfg.Logging)
	}
	if cfg.Store.Backend != "redis" || cfg.Store.Redis.Addr != "redis.internal:6379" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Store.Redis.DB != 4 {
		t.Errorf("Redis.DB = %d, want 4 (env wins)", cfg.Store.Redis.DB)
	}
	if cfg.Pipeline.Gravity != 2.5 {
		t.Errorf("Pipeline.Gravity = %v, want 2.5 (env wins)", cfg.Pipeline.Gravity)
	}
	if cfg.Pipeline.UserSimilarity != "euclidean" || cfg.Pipeline.Workers != 3 {
		t.Errorf("Pipeline = %+v", cfg.Pipeline)
	}
	if !cfg.IsScheduled() || cfg.Schedule.Interval != 30*time.Minute || cfg.Schedule.RunTimeout != 10*time.Minute {
		t.Errorf("Schedule = %+v", cfg.Schedule)
	}
	// Unset keys keep their defaults
	if !cfg.Schedule.RunOnStart {
		t.Error("Schedule.RunOnStart lost its default")
	}
	if cfg.Pipeline.SimilarUsers != 7 {
		t.Errorf("Pipeline.SimilarUsers = %d, want default 7", cfg.Pipeline.SimilarUsers)
	}
	if cfg.Dataset.SeedPath != "/seed/recipes.json" {
		t.Errorf("Dataset.SeedPath = %q", cfg.Dataset.SeedPath)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown backend",
			env:     map[string]string{"STORE_BACKEND": "mongo"},
			wantErr: "store.backend must be one of",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"LOG_LEVEL": "verbose"},
			wantErr: "logging.level must be one of",
		},
		{
			name:    "unknown metric",
			env:     map[string]string{"PIPELINE_USER_SIMILARITY": "cosine"},
			wantErr: "pipeline.user_similarity must be one of",
		},
		{
			name:    "threshold out of range",
			env:     map[string]string{"PIPELINE_GOOD_RATING_THRESHOLD": "7"},
			wantErr: "pipeline.good_rating_threshold must be less than or equal to 5",
		},
		{
			name:    "schedule too frequent",
			env:     map[string]string{"SCHEDULE_ENABLED": "true", "SCHEDULE_INTERVAL": "10s"},
			wantErr: "schedule.interval must be at least",
		},
		{
			name:    "badger without path",
			yaml:    "store:\n  badger:\n    path: \"\"\n",
			wantErr: "store.badger.path is required",
		},
		{
			name:    "metrics without address",
			yaml:    "metrics:\n  addr: \"\"\n",
			wantErr: "metrics.addr is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			if tt.yaml != "" {
				t.Setenv(ConfigPathEnvVar, writeConfig(t, tt.yaml))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	isolateEnv(t)

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFile() error = nil for missing file")
	}
}

func TestConfig_Conversions(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Store.Backend = "redis"
	cfg.Store.Redis.DB = 3
	cfg.Pipeline.Workers = 0
	cfg.Pipeline.TopRated = 5
	cfg.Logging.Caller = true

	opts := cfg.StoreOptions()
	if opts.Backend != store.BackendRedis || opts.RedisDB != 3 || opts.RedisKeyPrefix != "forkcast:" {
		t.Errorf("StoreOptions() = %+v", opts)
	}

	rc := cfg.RecommendConfig()
	if rc.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want NumCPU", rc.Workers)
	}
	if rc.Trending.TopRated != 5 || rc.Neighborhood.SimilarUsers != 7 {
		t.Errorf("RecommendConfig() = %+v", rc)
	}

	lc := cfg.LoggingOptions()
	if !lc.Caller || lc.Level != "info" || !lc.Timestamp {
		t.Errorf("LoggingOptions() = %+v", lc)
	}
}
