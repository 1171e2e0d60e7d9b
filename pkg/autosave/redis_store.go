package autosave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long an abandoned draft survives in Redis.
const DefaultTTL = 7 * 24 * time.Hour

// RedisStore keeps snapshots as JSON strings in Redis.
type RedisStore struct {
	db  redis.UniversalClient
	ttl time.Duration
}

// NewRedisStore creates a store over client. A non-positive ttl means DefaultTTL.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{db: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, key string, values map[string]string) error {
	raw, err := encode(values)
	if err != nil {
		return err
	}
	if err := s.db.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, key string) (map[string]string, bool, error) {
	raw, err := s.db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	values, err := decode(raw)
	if err != nil {
		return nil, false, err
	}
	return values, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.db.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}
