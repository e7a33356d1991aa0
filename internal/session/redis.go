package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "storefront:session:" // storefront:session:{profile}:{token|userInfo}

// RedisStorage keeps the session in redis so several shell processes can
// share one login.
type RedisStorage struct {
	client  *redis.Client
	profile string
	ttl     time.Duration
}

// NewRedisStorage creates a storage for profile. A zero ttl keeps keys until
// logout.
func NewRedisStorage(client *redis.Client, profile string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, profile: profile, ttl: ttl}
}

func (r *RedisStorage) key(name string) string {
	return keyPrefix + r.profile + ":" + name
}

func (r *RedisStorage) Load(ctx context.Context) (State, error) {
	vals, err := r.client.MGet(ctx, r.key(keyToken), r.key(keyUserInfo)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return State{}, fmt.Errorf("failed to load session: %w", err)
	}

	var st State
	if len(vals) == 2 {
		if s, ok := vals[0].(string); ok {
			st.Token = s
		}
		if s, ok := vals[1].(string); ok {
			st.User, _ = decodeUser(s)
		}
	}
	return st, nil
}

func (r *RedisStorage) Save(ctx context.Context, st State) error {
	raw, err := encodeUser(st.User)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(keyToken), st.Token, r.ttl)
	pipe.Set(ctx, r.key(keyUserInfo), raw, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisStorage) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key(keyToken), r.key(keyUserInfo)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
