// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/tomtom215/forkcast/internal/models"
)

// errStoreClosed is returned by a MemoryStore after Close.
var errStoreClosed = errors.New("store closed")

// MemoryStore keeps records in maps guarded by a RWMutex. Records are
// cloned on the way in and out so callers never share memory with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[int64]*models.User
	items  map[int64]*models.Item
	agg    *models.Aggregate
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[int64]*models.User),
		items: make(map[int64]*models.Item),
		agg:   &models.Aggregate{},
	}
}

// AllUsers returns copies of every user sorted by id.
func (s *MemoryStore) AllUsers(ctx context.Context) ([]*models.User, error) {
	if err := s.check(ctx, "all users"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u.Clone())
	}
	sortUsers(users)
	return users, nil
}

// AllItems returns copies of every item sorted by id.
func (s *MemoryStore) AllItems(ctx context.Context) ([]*models.Item, error) {
	if err := s.check(ctx, "all items"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*models.Item, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, it.Clone())
	}
	sortItems(items)
	return items, nil
}

// GetUser returns a copy of one user.
func (s *MemoryStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if err := s.check(ctx, "get user"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, notFound("get user", id)
	}
	return u.Clone(), nil
}

// GetItem returns a copy of one item.
func (s *MemoryStore) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	if err := s.check(ctx, "get item"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return nil, notFound("get item", id)
	}
	return it.Clone(), nil
}

// SaveUser stores a copy of the user.
func (s *MemoryStore) SaveUser(ctx context.Context, user *models.User) error {
	if err := s.check(ctx, "save user"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = user.Clone()
	return nil
}

// SaveItem stores a copy of the item.
func (s *MemoryStore) SaveItem(ctx context.Context, item *models.Item) error {
	if err := s.check(ctx, "save item"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[item.ID] = item.Clone()
	return nil
}

// GetAggregate returns a copy of the aggregate.
func (s *MemoryStore) GetAggregate(ctx context.Context) (*models.Aggregate, error) {
	if err := s.check(ctx, "get aggregate"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.agg.Clone(), nil
}

// SaveAggregate stores a copy of the aggregate.
func (s *MemoryStore) SaveAggregate(ctx context.Context, agg *models.Aggregate) error {
	if err := s.check(ctx, "save aggregate"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.agg = agg.Clone()
	return nil
}

// ClearDerivedFields resets derived lists on every record in one critical section.
func (s *MemoryStore) ClearDerivedFields(ctx context.Context) error {
	if err := s.check(ctx, "clear derived fields"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		u.ClearDerived()
	}
	for _, it := range s.items {
		it.ClearDerived()
	}
	s.agg.ClearRankings()
	return nil
}

// Close marks the store closed. Later calls fail with a DataAccessError.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// check fails fast on a cancelled context or a closed store.
func (s *MemoryStore) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return &DataAccessError{Op: op, Err: err}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return &DataAccessError{Op: op, Err: errStoreClosed}
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
