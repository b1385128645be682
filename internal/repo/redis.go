package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/ecotrip/internal/domain"
)

// redisKeyPrefix namespaces every key this service writes.
const redisKeyPrefix = "ecotrip:"

// redisStore is the Redis implementation of Store.
type redisStore struct {
	client redis.UniversalClient
}

// NewRedisStore constructs a Store backed by a Redis client.
func NewRedisStore(client redis.UniversalClient) Store {
	return &redisStore{client: client}
}

// redisKey renders "ecotrip:<kind>:<owner>". The kind never contains ':' so
// the owner part is unambiguous.
func redisKey(key Key) string {
	return redisKeyPrefix + string(key.Kind) + ":" + key.Owner
}

func (s *redisStore) Get(ctx context.Context, key Key) ([]byte, error) {
	v, err := s.client.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("repo.redisStore.Get: %s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.redisStore.Get: %w", err)
	}
	return v, nil
}

func (s *redisStore) Set(ctx context.Context, key Key, value []byte) error {
	if err := s.client.Set(ctx, redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("repo.redisStore.Set: %w", err)
	}
	return nil
}

func (s *redisStore) Remove(ctx context.Context, key Key) error {
	if err := s.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("repo.redisStore.Remove: %w", err)
	}
	return nil
}
