// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package config

import (
	"runtime"
	"time"

	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/recommend"
	"github.com/tomtom215/forkcast/internal/store"
)

// Config holds all application configuration.
type Config struct {
	Logging  LoggingConfig  `koanf:"logging"`
	Store    StoreConfig    `koanf:"store"`
	Pipeline PipelineConfig `koanf:"pipeline"`
	Schedule ScheduleConfig `koanf:"schedule"` // Optional: periodic runs under the supervisor
	Metrics  MetricsConfig  `koanf:"metrics"`  // Ops server, scheduled mode only
	Dataset  DatasetConfig  `koanf:"dataset"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Backend string       `koanf:"backend" validate:"oneof=memory badger redis"`
	Badger  BadgerConfig `koanf:"badger"`
	Redis   RedisConfig  `koanf:"redis"`
}

// BadgerConfig configures the embedded BadgerDB backend.
type BadgerConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// RedisConfig configures the shared Redis backend.
type RedisConfig struct {
	Addr      string `koanf:"addr" validate:"omitempty,hostname_port"`
	Password  string `koanf:"password"`
	DB        int    `koanf:"db" validate:"min=0,max=15"`
	KeyPrefix string `koanf:"key_prefix"`
}

// PipelineConfig holds recommendation pipeline settings. It mirrors
// recommend.Config with flat koanf keys.
type PipelineConfig struct {
	// Workers bounds per-stage concurrency. 0 selects runtime.NumCPU().
	Workers int `koanf:"workers" validate:"min=0,max=1024"`

	UserSimilarity      string `koanf:"user_similarity" validate:"omitempty,oneof=pearson euclidean"`
	SimilarUsers        int    `koanf:"similar_users" validate:"min=0"`
	SimilarItemsPerKind int    `koanf:"similar_items_per_kind" validate:"min=0"`
	MaxSimilarItems     int    `koanf:"max_similar_items" validate:"min=0"`

	CollaborativeTopN   int     `koanf:"collaborative_top_n" validate:"min=0"`
	ContentTopN         int     `koanf:"content_top_n" validate:"min=0"`
	GoodRatingThreshold float64 `koanf:"good_rating_threshold" validate:"gte=0,lte=5"`

	TopFavorites   int     `koanf:"top_favorites" validate:"min=0"`
	TopRated       int     `koanf:"top_rated" validate:"min=0"`
	TopInteresting int     `koanf:"top_interesting" validate:"min=0"`
	Gravity        float64 `koanf:"gravity" validate:"gt=0"`
}

// ScheduleConfig controls scheduled mode. When disabled the binary performs
// a single run and exits.
type ScheduleConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Interval   time.Duration `koanf:"interval"`
	RunOnStart bool          `koanf:"run_on_start"`
	RunTimeout time.Duration `koanf:"run_timeout"` // 0 = no per-run timeout
}

// MetricsConfig configures the ops HTTP server exposing /metrics and health probes.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr" validate:"omitempty,hostname_port"`
	Path    string `koanf:"path" validate:"omitempty,startswith=/"`
}

// DatasetConfig configures the optional seed import performed before a run.
type DatasetConfig struct {
	// SeedPath is a JSON dataset file. Empty disables seeding.
	SeedPath string `koanf:"seed_path"`

	// SeedOnly imports the dataset and exits without running the pipeline.
	SeedOnly bool `koanf:"seed_only"`
}

// LoggingOptions converts the section to logging.Config.
func (c *Config) LoggingOptions() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}

// StoreOptions converts the section to store.Options.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:        store.Backend(c.Store.Backend),
		BadgerPath:     c.Store.Badger.Path,
		BadgerInMemory: c.Store.Badger.InMemory,
		RedisAddr:      c.Store.Redis.Addr,
		RedisPassword:  c.Store.Redis.Password,
		RedisDB:        c.Store.Redis.DB,
		RedisKeyPrefix: c.Store.Redis.KeyPrefix,
	}
}

// RecommendConfig converts the pipeline section to recommend.Config.
func (c *Config) RecommendConfig() *recommend.Config {
	p := c.Pipeline
	workers := p.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	return &recommend.Config{
		Workers: workers,
		Neighborhood: recommend.NeighborhoodConfig{
			UserSimilarity:      p.UserSimilarity,
			SimilarUsers:        p.SimilarUsers,
			SimilarItemsPerKind: p.SimilarItemsPerKind,
			MaxSimilarItems:     p.MaxSimilarItems,
		},
		Prediction: recommend.PredictionConfig{
			CollaborativeTopN:   p.CollaborativeTopN,
			ContentTopN:         p.ContentTopN,
			GoodRatingThreshold: p.GoodRatingThreshold,
		},
		Trending: recommend.TrendingConfig{
			TopFavorites:   p.TopFavorites,
			TopRated:       p.TopRated,
			TopInteresting: p.TopInteresting,
			Gravity:        p.Gravity,
		},
	}
}
