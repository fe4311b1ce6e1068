// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/forkcast/internal/models"
)

// Store is the read/write contract the pipeline needs from persistence.
//
// AllUsers and AllItems return independent copies sorted by id ascending;
// callers may modify them freely. Save operations persist the full record,
// derived fields included, replacing any previous version as a whole.
// Every error returned is a *DataAccessError.
type Store interface {
	// AllUsers returns every user record.
	AllUsers(ctx context.Context) ([]*models.User, error)

	// AllItems returns every item record.
	AllItems(ctx context.Context) ([]*models.Item, error)

	// GetUser returns one user or a DataAccessError wrapping ErrNotFound.
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// GetItem returns one item or a DataAccessError wrapping ErrNotFound.
	GetItem(ctx context.Context, id int64) (*models.Item, error)

	// SaveUser persists the user record.
	SaveUser(ctx context.Context, user *models.User) error

	// SaveItem persists the item record.
	SaveItem(ctx context.Context, item *models.Item) error

	// GetAggregate returns the aggregate record, or an empty one if none was saved yet.
	GetAggregate(ctx context.Context) (*models.Aggregate, error)

	// SaveAggregate persists the aggregate record.
	SaveAggregate(ctx context.Context, agg *models.Aggregate) error

	// ClearDerivedFields removes similarity, ranking and prediction data from
	// every record. The tag vocabulary and average ratings are kept.
	ClearDerivedFields(ctx context.Context) error

	// Close releases the backend.
	Close() error
}

// Backend names a store implementation.
type Backend string

const (
	// BackendMemory keeps records in process memory (tests, dry runs).
	BackendMemory Backend = "memory"

	// BackendBadger persists records in an embedded BadgerDB directory.
	BackendBadger Backend = "badger"

	// BackendRedis persists records in a shared Redis instance.
	BackendRedis Backend = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend Backend

	// BadgerPath is the BadgerDB directory.
	BadgerPath string

	// BadgerInMemory runs BadgerDB without touching disk.
	BadgerInMemory bool

	// Redis connection settings.
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string
}

// Open creates the store selected by opts.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(ctx context.Context, opts Options, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "store").Str("backend", string(opts.Backend)).Logger()

	switch opts.Backend {
	case BackendMemory, "":
		logger.Info().Msg("using in-memory store")
		return NewMemoryStore(), nil

	case BackendBadger:
		bopts := badger.DefaultOptions(opts.BadgerPath)
		if opts.BadgerInMemory {
			bopts = badger.DefaultOptions("").WithInMemory(true)
		}
		bopts.Logger = nil // Suppress BadgerDB logs

		db, err := badger.Open(bopts)
		if err != nil {
			return nil, accessError("open badger", 0, err)
		}
		logger.Info().
			Str("path", opts.BadgerPath).
			Bool("in_memory", opts.BadgerInMemory).
			Msg("opened badger store")
		return NewBadgerStore(db), nil

	case BackendRedis:
		st, err := NewRedisStore(ctx, RedisOptions{
			Addr:      opts.RedisAddr,
			Password:  opts.RedisPassword,
			DB:        opts.RedisDB,
			KeyPrefix: opts.RedisKeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		logger.Info().Str("addr", opts.RedisAddr).Int("db", opts.RedisDB).Msg("connected to redis store")
		return st, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}

// sortUsers orders users by id ascending.
func sortUsers(users []*models.User) {
	slices.SortFunc(users, func(a, b *models.User) int { return cmp.Compare(a.ID, b.ID) })
}

// sortItems orders items by id ascending.
func sortItems(items []*models.Item) {
	slices.SortFunc(items, func(a, b *models.Item) int { return cmp.Compare(a.ID, b.ID) })
}
