// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package dataset

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/metrics"
	"github.com/tomtom215/forkcast/internal/models"
	"github.com/tomtom215/forkcast/internal/store"
)

// ErrImportInProgress is returned when Import is called while another import
// on the same Importer has not finished.
var ErrImportInProgress = errors.New("import already in progress")

// ReferenceError reports a rating or favorite that points at a record that
// exists neither in the dataset nor in the store.
type ReferenceError struct {
	Kind  string // "user" or "item"
	ID    int64
	Field string // "ratings" or "favorites"
	Ref   int64
}

// Error implements error.
func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %d: %s references unknown id %d", e.Kind, e.ID, e.Field, e.Ref)
}

// Importer writes datasets into a store.
//
// Favorites are kept symmetric: if a user lists an item, the item lists the
// user and the other way round. Records already in the store are rewritten
// when the dataset adds a favorite link to them. Tags of imported items are
// appended to the aggregate vocabulary in item id order.
type Importer struct {
	store store.Store
	now   func() time.Time

	mu      sync.Mutex
	running bool
}

// NewImporter creates an importer writing to st.
func NewImporter(st store.Store) *Importer {
	return &Importer{store: st, now: time.Now}
}

// Import writes ds into the store. Nothing is written if a reference cannot
// be resolved. A store failure part way through leaves the records saved so
// far in place; re-running the same import is safe.
func (i *Importer) Import(ctx context.Context, ds *Dataset) (*ImportStats, error) {
	i.mu.Lock()
	if i.running {
		i.mu.Unlock()
		return nil, ErrImportInProgress
	}
	i.running = true
	i.mu.Unlock()

	defer func() {
		i.mu.Lock()
		i.running = false
		i.mu.Unlock()
	}()

	logger := logging.CtxWith(ctx).Str("component", "dataset").Logger()
	stats := &ImportStats{StartTime: i.now()}

	if err := ds.Validate(); err != nil {
		return nil, err
	}

	plan := newImportPlan(ds)
	if err := i.resolve(ctx, plan); err != nil {
		return nil, err
	}
	stats.FavoritesLinked = plan.link()

	for _, u := range plan.sortedUsers() {
		if err := i.store.SaveUser(ctx, u); err != nil {
			return nil, err
		}
	}
	for _, it := range plan.sortedItems() {
		if err := i.store.SaveItem(ctx, it); err != nil {
			return nil, err
		}
	}
	stats.Users = len(ds.Users)
	stats.Items = len(ds.Items)
	stats.Touched = len(plan.extUsers) + len(plan.extItems)

	added, err := i.extendVocabulary(ctx, ds.Items)
	if err != nil {
		return nil, err
	}
	stats.TagsAdded = added

	metrics.RecordDatasetImport("user", stats.Users)
	metrics.RecordDatasetImport("item", stats.Items)

	stats.EndTime = i.now()
	logger.Info().
		Int("users", stats.Users).
		Int("items", stats.Items).
		Int("touched", stats.Touched).
		Int("favorites_linked", stats.FavoritesLinked).
		Int("tags_added", stats.TagsAdded).
		Dur("duration", stats.Duration()).
		Msg("Dataset imported")

	return stats, nil
}

// resolve loads every store record the dataset references but does not
// contain.
func (i *Importer) resolve(ctx context.Context, p *importPlan) error {
	for _, u := range p.users {
		for _, r := range u.Ratings {
			if err := i.resolveItem(ctx, p, u.ID, "ratings", r.ItemID); err != nil {
				return err
			}
		}
		for _, id := range u.Favorites {
			if err := i.resolveItem(ctx, p, u.ID, "favorites", id); err != nil {
				return err
			}
		}
	}
	for _, it := range p.items {
		for _, id := range it.Favorites {
			if err := i.resolveUser(ctx, p, it.ID, id); err != nil {
				return err
			}
		}
	}
	return nil
}

func (i *Importer) resolveItem(ctx context.Context, p *importPlan, userID int64, field string, itemID int64) error {
	if _, ok := p.items[itemID]; ok {
		return nil
	}
	if _, ok := p.extItems[itemID]; ok {
		return nil
	}
	it, err := i.store.GetItem(ctx, itemID)
	if store.IsNotFound(err) {
		return &ReferenceError{Kind: "user", ID: userID, Field: field, Ref: itemID}
	}
	if err != nil {
		return err
	}
	p.extItems[itemID] = it
	return nil
}

func (i *Importer) resolveUser(ctx context.Context, p *importPlan, itemID, userID int64) error {
	if _, ok := p.users[userID]; ok {
		return nil
	}
	if _, ok := p.extUsers[userID]; ok {
		return nil
	}
	u, err := i.store.GetUser(ctx, userID)
	if store.IsNotFound(err) {
		return &ReferenceError{Kind: "item", ID: itemID, Field: "favorites", Ref: userID}
	}
	if err != nil {
		return err
	}
	p.extUsers[userID] = u
	return nil
}

// extendVocabulary appends the tags of items, in id order, to the aggregate.
func (i *Importer) extendVocabulary(ctx context.Context, items []*models.Item) (int, error) {
	agg, err := i.store.GetAggregate(ctx)
	if err != nil {
		return 0, err
	}

	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b *models.Item) int { return cmp.Compare(a.ID, b.ID) })

	added := 0
	for _, it := range sorted {
		added += agg.AddTags(it.Tags...)
	}
	if added == 0 {
		return 0, nil
	}
	if err := i.store.SaveAggregate(ctx, agg); err != nil {
		return 0, err
	}
	return added, nil
}

// importPlan is the working set of one import. Dataset records are copied so
// the caller's Dataset is never modified.
type importPlan struct {
	users    map[int64]*models.User
	items    map[int64]*models.Item
	extUsers map[int64]*models.User
	extItems map[int64]*models.Item

	// Store records that gained a favorite link and must be rewritten.
	dirtyUsers map[int64]struct{}
	dirtyItems map[int64]struct{}
}

func newImportPlan(ds *Dataset) *importPlan {
	p := &importPlan{
		users:      make(map[int64]*models.User, len(ds.Users)),
		items:      make(map[int64]*models.Item, len(ds.Items)),
		extUsers:   make(map[int64]*models.User),
		extItems:   make(map[int64]*models.Item),
		dirtyUsers: make(map[int64]struct{}),
		dirtyItems: make(map[int64]struct{}),
	}
	for _, u := range ds.Users {
		p.users[u.ID] = u.Clone()
	}
	for _, it := range ds.Items {
		p.items[it.ID] = it.Clone()
	}
	return p
}

func (p *importPlan) user(id int64) *models.User {
	if u, ok := p.users[id]; ok {
		return u
	}
	return p.extUsers[id]
}

func (p *importPlan) item(id int64) *models.Item {
	if it, ok := p.items[id]; ok {
		return it
	}
	return p.extItems[id]
}

// link makes favorites symmetric across every record in the plan and returns
// the number of links added.
func (p *importPlan) link() int {
	linked := 0
	for _, u := range p.users {
		for _, itemID := range u.Favorites {
			it := p.item(itemID)
			if slices.Contains(it.Favorites, u.ID) {
				continue
			}
			it.Favorites = append(it.Favorites, u.ID)
			if _, ext := p.extItems[itemID]; ext {
				p.dirtyItems[itemID] = struct{}{}
			}
			linked++
		}
	}
	for _, it := range p.items {
		for _, userID := range it.Favorites {
			u := p.user(userID)
			if u.HasFavorited(it.ID) {
				continue
			}
			u.Favorites = append(u.Favorites, it.ID)
			if _, ext := p.extUsers[userID]; ext {
				p.dirtyUsers[userID] = struct{}{}
			}
			linked++
		}
	}

	// Store records that gained nothing are not rewritten.
	for id := range p.extUsers {
		if _, dirty := p.dirtyUsers[id]; !dirty {
			delete(p.extUsers, id)
		}
	}
	for id := range p.extItems {
		if _, dirty := p.dirtyItems[id]; !dirty {
			delete(p.extItems, id)
		}
	}

	for _, u := range p.users {
		u.Favorites = normalizeIDs(u.Favorites)
	}
	for _, u := range p.extUsers {
		u.Favorites = normalizeIDs(u.Favorites)
	}
	for _, it := range p.items {
		it.Favorites = normalizeIDs(it.Favorites)
	}
	for _, it := range p.extItems {
		it.Favorites = normalizeIDs(it.Favorites)
	}
	return linked
}

func (p *importPlan) sortedUsers() []*models.User {
	out := make([]*models.User, 0, len(p.users)+len(p.extUsers))
	for _, u := range p.users {
		out = append(out, u)
	}
	for _, u := range p.extUsers {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b *models.User) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (p *importPlan) sortedItems() []*models.Item {
	out := make([]*models.Item, 0, len(p.items)+len(p.extItems))
	for _, it := range p.items {
		out = append(out, it)
	}
	for _, it := range p.extItems {
		out = append(out, it)
	}
	slices.SortFunc(out, func(a, b *models.Item) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// normalizeIDs sorts ids ascending and drops duplicates.
func normalizeIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return ids
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}
