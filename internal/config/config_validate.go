// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/validation"
)

// minScheduleInterval is the shortest accepted schedule.interval.
const minScheduleInterval = time.Minute

// Validate checks field constraints and then the cross-field rules that
// struct tags cannot express.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	if err := c.validateSchedule(); err != nil {
		return err
	}

	if err := c.validateMetrics(); err != nil {
		return err
	}

	if err := c.RecommendConfig().Validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case "badger":
		if c.Store.Badger.Path == "" && !c.Store.Badger.InMemory {
			return fmt.Errorf("store.badger.path is required unless store.badger.in_memory is set")
		}
	case "redis":
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("store.redis.addr is required for the redis backend")
		}
	}
	return nil
}

func (c *Config) validateSchedule() error {
	if !c.Schedule.Enabled {
		return nil
	}
	if c.Schedule.Interval < minScheduleInterval {
		return fmt.Errorf("schedule.interval must be at least %v, got %v", minScheduleInterval, c.Schedule.Interval)
	}
	if c.Schedule.RunTimeout < 0 {
		return fmt.Errorf("schedule.run_timeout must not be negative, got %v", c.Schedule.RunTimeout)
	}
	if c.Dataset.SeedOnly {
		return fmt.Errorf("dataset.seed_only cannot be combined with schedule.enabled")
	}
	return nil
}

func (c *Config) validateMetrics() error {
	if !c.Metrics.Enabled {
		return nil
	}
	if c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required when metrics are enabled")
	}
	if c.Metrics.Path == "" {
		return fmt.Errorf("metrics.path is required when metrics are enabled")
	}
	return nil
}

// IsScheduled reports whether the binary should run under the supervisor
// instead of performing a single run.
func (c *Config) IsScheduled() bool {
	return c.Schedule.Enabled
}
