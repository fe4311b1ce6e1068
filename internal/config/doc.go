// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package config provides configuration loading for Forkcast.

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: $CONFIG_PATH, else ./config.yaml, ./config.yml,
    /etc/forkcast/config.yaml, /etc/forkcast/config.yml
 3. Environment variables

Only the environment variables listed below are read; anything else in the
environment is ignored.

# Sections

	logging:
	  level: info            # LOG_LEVEL
	  format: json           # LOG_FORMAT
	  caller: false          # LOG_CALLER
	store:
	  backend: badger        # STORE_BACKEND: memory, badger, redis
	  badger:
	    path: /data/forkcast # BADGER_PATH
	    in_memory: false     # BADGER_IN_MEMORY
	  redis:
	    addr: 127.0.0.1:6379 # REDIS_ADDR
	    password: ""         # REDIS_PASSWORD
	    db: 0                # REDIS_DB
	    key_prefix: forkcast: # REDIS_KEY_PREFIX
	pipeline:
	  workers: 0             # PIPELINE_WORKERS, 0 = one per CPU
	  user_similarity: pearson
	  similar_users: 7
	  similar_items_per_kind: 2
	  max_similar_items: 4
	  collaborative_top_n: 10
	  content_top_n: 7
	  good_rating_threshold: 4
	  top_favorites: 10
	  top_rated: 15
	  top_interesting: 10
	  gravity: 1.8           # PIPELINE_GRAVITY
	schedule:
	  enabled: false         # SCHEDULE_ENABLED
	  interval: 6h           # SCHEDULE_INTERVAL
	  run_on_start: true     # SCHEDULE_RUN_ON_START
	  run_timeout: 2h        # SCHEDULE_RUN_TIMEOUT
	metrics:
	  enabled: true          # METRICS_ENABLED
	  addr: 0.0.0.0:9464     # METRICS_ADDR
	  path: /metrics         # METRICS_PATH
	dataset:
	  seed_path: ""          # SEED_PATH
	  seed_only: false       # SEED_ONLY

Every pipeline key has a PIPELINE_<KEY> environment variable.

# Validation

Load validates field constraints with go-playground/validator through the
validation package, then applies cross-field rules (a badger store needs a
path unless in memory, a schedule needs an interval of at least a minute,
and so on) and finally the pipeline's own recommend.Config.Validate.

# Usage

	cfg, err := config.Load()
	if err != nil {
	    return err
	}
	logging.Init(cfg.LoggingOptions())
	st, err := store.Open(ctx, cfg.StoreOptions(), logging.Logger())
*/
package config
