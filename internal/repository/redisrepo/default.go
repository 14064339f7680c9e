package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type defaultRepo struct {
	rdb *redis.Client
}

func newDefaultRepo(rdb *redis.Client) Default {
	return &defaultRepo{
		rdb: rdb,
	}
}

// IsMiss reports whether err means the key is absent.
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}

func (r *defaultRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

func (r *defaultRepo) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return r.rdb.Set(ctx, key, valueJSON, ttl).Err()
}

func (r *defaultRepo) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.rdb.Get(ctx, key)
}

func (r *defaultRepo) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return r.rdb.Del(ctx, keys...)
}

// Get decodes the JSON value stored under key. A stored JSON null yields
// (nil, nil); a missing key yields redis.Nil.
func Get[T any](r Default, ctx context.Context, key string) (*T, error) {
	var result *T
	found, err := getJSON(r, ctx, key, &result)
	if err != nil || !found {
		return nil, err
	}
	return result, nil
}

// GetMany is Get for JSON arrays. An empty cached list decodes to an empty,
// non-nil slice so it can be told apart from a miss.
func GetMany[T any](r Default, ctx context.Context, key string) ([]*T, error) {
	result := []*T{}
	found, err := getJSON(r, ctx, key, &result)
	if err != nil || !found {
		return nil, err
	}
	return result, nil
}

func getJSON(r Default, ctx context.Context, key string, dst interface{}) (bool, error) {
	value, err := r.Get(ctx, key).Bytes()
	if err != nil {
		return false, err
	}
	if string(value) == "null" {
		return false, nil
	}
	return true, json.Unmarshal(value, dst)
}
