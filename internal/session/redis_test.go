package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labmall/storefront/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisStorage_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	storage := NewRedisStorage(client, "default", 0)

	store := NewStore(storage)
	require.NoError(t, store.Login(ctx, "tok-r", &domain.User{ID: 3, Nickname: "r"}))

	assert.Equal(t, "tok-r", mustGet(t, mr, "storefront:session:default:token"))
	assert.Contains(t, mustGet(t, mr, "storefront:session:default:userInfo"), `"nickname":"r"`)

	restored := NewStore(NewRedisStorage(client, "default", 0))
	require.NoError(t, restored.Restore(ctx))
	assert.True(t, restored.IsAuthenticated())

	require.NoError(t, store.Expire(ctx))
	assert.False(t, mr.Exists("storefront:session:default:token"))
	assert.False(t, mr.Exists("storefront:session:default:userInfo"))
}

func TestRedisStorage_TTLExpiresSession(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	storage := NewRedisStorage(client, "default", time.Hour)

	require.NoError(t, storage.Save(ctx, State{Token: "t", User: &domain.User{ID: 1}}))
	mr.FastForward(2 * time.Hour)

	store := NewStore(storage)
	require.NoError(t, store.Restore(ctx))
	assert.False(t, store.IsAuthenticated())
}

func TestRedisStorage_LoadEmpty(t *testing.T) {
	_, client := setupRedis(t)
	st, err := NewRedisStorage(client, "nobody", 0).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Empty())
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}
