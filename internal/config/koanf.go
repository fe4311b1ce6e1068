// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/forkcast/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/forkcast/config.yaml",
	"/etc/forkcast/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with every default applied. Pipeline
// defaults come from recommend.DefaultConfig so both stay in step.
func defaultConfig() *Config {
	rc := recommend.DefaultConfig()

	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Store: StoreConfig{
			Backend: "badger",
			Badger: BadgerConfig{
				Path: "/data/forkcast",
			},
			Redis: RedisConfig{
				Addr:      "127.0.0.1:6379",
				KeyPrefix: "forkcast:",
			},
		},
		Pipeline: PipelineConfig{
			Workers:             0, // runtime.NumCPU()
			UserSimilarity:      rc.Neighborhood.UserSimilarity,
			SimilarUsers:        rc.Neighborhood.SimilarUsers,
			SimilarItemsPerKind: rc.Neighborhood.SimilarItemsPerKind,
			MaxSimilarItems:     rc.Neighborhood.MaxSimilarItems,
			CollaborativeTopN:   rc.Prediction.CollaborativeTopN,
			ContentTopN:         rc.Prediction.ContentTopN,
			GoodRatingThreshold: rc.Prediction.GoodRatingThreshold,
			TopFavorites:        rc.Trending.TopFavorites,
			TopRated:            rc.Trending.TopRated,
			TopInteresting:      rc.Trending.TopInteresting,
			Gravity:             rc.Trending.Gravity,
		},
		Schedule: ScheduleConfig{
			Enabled:    false,
			Interval:   6 * time.Hour,
			RunOnStart: true,
			RunTimeout: 2 * time.Hour,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    "0.0.0.0:9464",
			Path:    "/metrics",
		},
	}
}

// Load reads configuration from defaults, an optional YAML file, and
// environment variables, in increasing priority, then validates it.
func Load() (*Config, error) {
	return load(findConfigFile())
}

// LoadFile is Load with an explicit config file path. The file must exist.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	return load(path)
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// STORE_BACKEND -> store.backend
	// PIPELINE_GRAVITY -> pipeline.gravity
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Store
	"store_backend":    "store.backend",
	"badger_path":      "store.badger.path",
	"badger_in_memory": "store.badger.in_memory",
	"redis_addr":       "store.redis.addr",
	"redis_password":   "store.redis.password",
	"redis_db":         "store.redis.db",
	"redis_key_prefix": "store.redis.key_prefix",

	// Pipeline
	"pipeline_workers":                "pipeline.workers",
	"pipeline_user_similarity":        "pipeline.user_similarity",
	"pipeline_similar_users":          "pipeline.similar_users",
	"pipeline_similar_items_per_kind": "pipeline.similar_items_per_kind",
	"pipeline_max_similar_items":      "pipeline.max_similar_items",
	"pipeline_collaborative_top_n":    "pipeline.collaborative_top_n",
	"pipeline_content_top_n":          "pipeline.content_top_n",
	"pipeline_good_rating_threshold":  "pipeline.good_rating_threshold",
	"pipeline_top_favorites":          "pipeline.top_favorites",
	"pipeline_top_rated":              "pipeline.top_rated",
	"pipeline_top_interesting":        "pipeline.top_interesting",
	"pipeline_gravity":                "pipeline.gravity",

	// Schedule
	"schedule_enabled":      "schedule.enabled",
	"schedule_interval":     "schedule.interval",
	"schedule_run_on_start": "schedule.run_on_start",
	"schedule_run_timeout":  "schedule.run_timeout",

	// Metrics / ops server
	"metrics_enabled": "metrics.enabled",
	"metrics_addr":    "metrics.addr",
	"metrics_path":    "metrics.path",

	// Dataset
	"seed_path": "dataset.seed_path",
	"seed_only": "dataset.seed_only",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped variables return "" and are skipped, so unrelated environment
// variables never leak into the configuration.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
