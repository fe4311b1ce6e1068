// Forkcast - Recipe Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/forkcast/internal/models"
)

// redisBatchSize bounds MGET and pipeline sizes.
const redisBatchSize = 500

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int

	// KeyPrefix namespaces every key, e.g. "forkcast:".
	KeyPrefix string
}

// RedisStore implements Store on Redis. Each record is a JSON string key;
// two sets index the user and item ids for full scans.
//
// Key layout (with prefix p):
//
//	p+"user:<id>"   user record
//	p+"item:<id>"   item record
//	p+"users"       set of user ids
//	p+"items"       set of item ids
//	p+"aggregate"   aggregate record
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection with PING.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, accessError("connect redis", 0, err)
	}
	return &RedisStore{client: client, prefix: opts.KeyPrefix}, nil
}

func (s *RedisStore) key(parts ...string) string {
	k := s.prefix
	for _, p := range parts {
		k += p
	}
	return k
}

func (s *RedisStore) userKey(id int64) string {
	return s.key(userKeyPrefix, strconv.FormatInt(id, 10))
}

func (s *RedisStore) itemKey(id int64) string {
	return s.key(itemKeyPrefix, strconv.FormatInt(id, 10))
}

// AllUsers returns every user sorted by id.
func (s *RedisStore) AllUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := s.loadAll(ctx, s.key("users"), s.userKey, func(val string) error {
		var u models.User
		if err := json.Unmarshal([]byte(val), &u); err != nil {
			return fmt.Errorf("decode user: %w", err)
		}
		users = append(users, &u)
		return nil
	})
	if err != nil {
		return nil, accessError("all users", 0, err)
	}
	sortUsers(users)
	return users, nil
}

// AllItems returns every item sorted by id.
func (s *RedisStore) AllItems(ctx context.Context) ([]*models.Item, error) {
	var items []*models.Item
	err := s.loadAll(ctx, s.key("items"), s.itemKey, func(val string) error {
		var it models.Item
		if err := json.Unmarshal([]byte(val), &it); err != nil {
			return fmt.Errorf("decode item: %w", err)
		}
		items = append(items, &it)
		return nil
	})
	if err != nil {
		return nil, accessError("all items", 0, err)
	}
	sortItems(items)
	return items, nil
}

// GetUser loads one user.
func (s *RedisStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := s.get(ctx, s.userKey(id), &u); err != nil {
		return nil, accessError("get user", id, err)
	}
	return &u, nil
}

// GetItem loads one item.
func (s *RedisStore) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	var it models.Item
	if err := s.get(ctx, s.itemKey(id), &it); err != nil {
		return nil, accessError("get item", id, err)
	}
	return &it, nil
}

// SaveUser writes the user record and indexes its id.
func (s *RedisStore) SaveUser(ctx context.Context, user *models.User) error {
	return accessError("save user", user.ID, s.put(ctx, s.userKey(user.ID), s.key("users"), user.ID, user))
}

// SaveItem writes the item record and indexes its id.
func (s *RedisStore) SaveItem(ctx context.Context, item *models.Item) error {
	return accessError("save item", item.ID, s.put(ctx, s.itemKey(item.ID), s.key("items"), item.ID, item))
}

// GetAggregate loads the aggregate; a missing key reads as empty.
func (s *RedisStore) GetAggregate(ctx context.Context) (*models.Aggregate, error) {
	var agg models.Aggregate
	err := s.get(ctx, s.key(aggregateKey), &agg)
	if IsNotFound(err) {
		return &models.Aggregate{}, nil
	}
	if err != nil {
		return nil, accessError("get aggregate", 0, err)
	}
	return &agg, nil
}

// SaveAggregate writes the aggregate record.
func (s *RedisStore) SaveAggregate(ctx context.Context, agg *models.Aggregate) error {
	data, err := json.Marshal(agg)
	if err != nil {
		return accessError("save aggregate", 0, fmt.Errorf("marshal aggregate: %w", err))
	}
	return accessError("save aggregate", 0, s.client.Set(ctx, s.key(aggregateKey), data, 0).Err())
}

// ClearDerivedFields rewrites every record without its derived lists using
// pipelined SETs in batches.
func (s *RedisStore) ClearDerivedFields(ctx context.Context) error {
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

	pipe := s.client.Pipeline()
	pending := 0
	flush := func() error {
		if pending == 0 {
			return nil
		}
		pending = 0
		_, err := pipe.Exec(ctx)
		return err
	}
	queue := func(key string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", key, err)
		}
		pipe.Set(ctx, key, data, 0)
		pending++
		if pending >= redisBatchSize {
			return flush()
		}
		return nil
	}

	for _, u := range users {
		u.ClearDerived()
		if err := queue(s.userKey(u.ID), u); err != nil {
			return accessError(op, u.ID, err)
		}
	}
	for _, it := range items {
		it.ClearDerived()
		if err := queue(s.itemKey(it.ID), it); err != nil {
			return accessError(op, it.ID, err)
		}
	}
	agg.ClearRankings()
	if err := queue(s.key(aggregateKey), agg); err != nil {
		return accessError(op, 0, err)
	}
	return accessError(op, 0, flush())
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return accessError("close", 0, s.client.Close())
}

// get decodes the string at key into dst. redis.Nil yields ErrNotFound.
func (s *RedisStore) get(ctx context.Context, key string, dst any) error {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return json.Unmarshal(val, dst)
}

// put writes the record and adds id to the index set in one MULTI/EXEC.
func (s *RedisStore) put(ctx context.Context, key, indexKey string, id int64, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, 0)
		pipe.SAdd(ctx, indexKey, id)
		return nil
	})
	return err
}

// loadAll reads the id set at indexKey and fetches records in MGET batches.
// Ids whose record vanished between SMEMBERS and MGET are skipped.
func (s *RedisStore) loadAll(ctx context.Context, indexKey string, keyFor func(int64) string, fn func(val string) error) error {
	members, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("smembers %s: %w", indexKey, err)
	}

	keys := make([]string, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return fmt.Errorf("parse id %q in %s: %w", m, indexKey, err)
		}
		keys = append(keys, keyFor(id))
	}

	for start := 0; start < len(keys); start += redisBatchSize {
		end := min(start+redisBatchSize, len(keys))
		vals, err := s.client.MGet(ctx, keys[start:end]...).Result()
		if err != nil {
			return fmt.Errorf("mget: %w", err)
		}
		for _, v := range vals {
			str, ok := v.(string)
			if !ok {
				continue
			}
			if err := fn(str); err != nil {
				return err
			}
		}
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
