// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/forkcast/internal/models"
)

// Key layout for BadgerDB storage. Ids are zero-padded so prefix iteration
// returns records in id order.
const (
	userKeyPrefix = "user:"
	itemKeyPrefix = "item:"
	aggregateKey  = "aggregate"
)

func userKey(id int64) []byte { return []byte(fmt.Sprintf("%s%020d", userKeyPrefix, id)) }
func itemKey(id int64) []byte { return []byte(fmt.Sprintf("%s%020d", itemKeyPrefix, id)) }

// BadgerStore implements Store on an embedded BadgerDB.
// Records are stored as goccy/go-json documents, one key per record.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore wraps an open BadgerDB. The store owns db and closes it on Close.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// AllUsers returns every user in id order.
func (s *BadgerStore) AllUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := scanPrefix(ctx, s.db, userKeyPrefix, func(val []byte) error {
		var u models.User
		if err := json.Unmarshal(val, &u); err != nil {
			return fmt.Errorf("decode user: %w", err)
		}
		users = append(users, &u)
		return nil
	})
	if err != nil {
		return nil, accessError("all users", 0, err)
	}
	return users, nil
}

// AllItems returns every item in id order.
func (s *BadgerStore) AllItems(ctx context.Context) ([]*models.Item, error) {
	var items []*models.Item
	err := scanPrefix(ctx, s.db, itemKeyPrefix, func(val []byte) error {
		var it models.Item
		if err := json.Unmarshal(val, &it); err != nil {
			return fmt.Errorf("decode item: %w", err)
		}
		items = append(items, &it)
		return nil
	})
	if err != nil {
		return nil, accessError("all items", 0, err)
	}
	return items, nil
}

// GetUser loads one user.
func (s *BadgerStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := s.get(ctx, userKey(id), &u); err != nil {
		return nil, accessError("get user", id, err)
	}
	return &u, nil
}

// GetItem loads one item.
func (s *BadgerStore) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	var it models.Item
	if err := s.get(ctx, itemKey(id), &it); err != nil {
		return nil, accessError("get item", id, err)
	}
	return &it, nil
}

// SaveUser writes the full user record.
func (s *BadgerStore) SaveUser(ctx context.Context, user *models.User) error {
	return accessError("save user", user.ID, s.put(ctx, userKey(user.ID), user))
}

// SaveItem writes the full item record.
func (s *BadgerStore) SaveItem(ctx context.Context, item *models.Item) error {
	return accessError("save item", item.ID, s.put(ctx, itemKey(item.ID), item))
}

// GetAggregate loads the aggregate; a missing record reads as empty.
func (s *BadgerStore) GetAggregate(ctx context.Context) (*models.Aggregate, error) {
	var agg models.Aggregate
	err := s.get(ctx, []byte(aggregateKey), &agg)
	if IsNotFound(err) {
		return &models.Aggregate{}, nil
	}
	if err != nil {
		return nil, accessError("get aggregate", 0, err)
	}
	return &agg, nil
}

// SaveAggregate writes the aggregate record.
func (s *BadgerStore) SaveAggregate(ctx context.Context, agg *models.Aggregate) error {
	return accessError("save aggregate", 0, s.put(ctx, []byte(aggregateKey), agg))
}

// ClearDerivedFields rewrites every record without its derived lists.
// Writes go through a WriteBatch so large datasets do not hit ErrTxnTooBig.
func (s *BadgerStore) ClearDerivedFields(ctx context.Context) error {
	const op = "clear derived fields"

	users, err := s.AllUsers(ctx)
	if err != nil {
		return err
	}
	items, err := s.AllItems(ctx)
	if err != nil {
		return err
	}
	agg, err := s.GetAggregate(ctx)
	if err != nil {
		return err
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, u := range users {
		u.ClearDerived()
		if err := setJSON(wb, userKey(u.ID), u); err != nil {
			return accessError(op, u.ID, err)
		}
	}
	for _, it := range items {
		it.ClearDerived()
		if err := setJSON(wb, itemKey(it.ID), it); err != nil {
			return accessError(op, it.ID, err)
		}
	}
	agg.ClearRankings()
	if err := setJSON(wb, []byte(aggregateKey), agg); err != nil {
		return accessError(op, 0, err)
	}

	if err := wb.Flush(); err != nil {
		return accessError(op, 0, fmt.Errorf("flush: %w", err))
	}
	return nil
}

// Close closes the underlying BadgerDB.
func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		return accessError("close", 0, err)
	}
	return nil
}

// get decodes the value at key into dst. A missing key yields ErrNotFound.
func (s *BadgerStore) get(ctx context.Context, key []byte, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dst)
		})
	})
}

// put encodes v and stores it at key.
func (s *BadgerStore) put(ctx context.Context, key []byte, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// setJSON encodes v into a write batch.
func setJSON(wb *badger.WriteBatch, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return wb.Set(key, data)
}

// scanPrefix calls fn with each value under prefix, in key order.
func scanPrefix(ctx context.Context, db *badger.DB, prefix string, fn func(val []byte) error) error {
	return db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	})
}

var _ Store = (*BadgerStore)(nil)
