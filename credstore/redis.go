package credstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the token pair as two string entries under a key prefix.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore creates a [RedisStore]. prefix namespaces the two entries;
// an empty prefix defaults to "ag".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ag"
	}
	return &RedisStore{redis: client, prefix: prefix}
}

func (s *RedisStore) accessKey() string {
	return s.prefix + ":" + AccessKey
}

func (s *RedisStore) refreshKey() string {
	return s.prefix + ":" + RefreshKey
}

// Save writes both entries in one transaction so a crash cannot leave a
// half-written pair.
func (s *RedisStore) Save(ctx context.Context, pair TokenPair) error {
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.accessKey(), pair.Access, 0)
		pipe.Set(ctx, s.refreshKey(), pair.Refresh, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// Load reads both entries. Missing entries come back as empty strings.
func (s *RedisStore) Load(ctx context.Context) (TokenPair, error) {
	values, err := s.redis.MGet(ctx, s.accessKey(), s.refreshKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return TokenPair{}, nil
		}
		return TokenPair{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var pair TokenPair
	if len(values) > 0 {
		if v, ok := values[0].(string); ok {
			pair.Access = v
		}
	}
	if len(values) > 1 {
		if v, ok := values[1].(string); ok {
			pair.Refresh = v
		}
	}

	return pair, nil
}

// Clear deletes both entries. Deleting an absent pair is not an error.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.accessKey(), s.refreshKey()).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Ping returns a point-in-time availability check.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
