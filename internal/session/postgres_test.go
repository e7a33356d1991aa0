package session

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labmall/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestPostgres skips unless TEST_DB_DSN points at a reachable database.
func setupTestPostgres(t *testing.T) *pgxpool.Pool {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL integration test")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(context.Background()))
	t.Cleanup(pool.Close)
	return pool
}

func TestPostgresStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := setupTestPostgres(t)

	storage := NewPostgresStorage(pool, "test-roundtrip")
	require.NoError(t, storage.EnsureSchema(ctx))
	t.Cleanup(func() { _ = storage.Clear(context.Background()) })

	store := NewStore(storage)
	require.NoError(t, store.Login(ctx, "tok-pg", &domain.User{ID: 11, Phone: "13800000000"}))

	restored := NewStore(NewPostgresStorage(pool, "test-roundtrip"))
	require.NoError(t, restored.Restore(ctx))
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, int64(11), restored.User().ID)

	require.NoError(t, store.Logout(ctx))
	st, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.True(t, st.Empty())
}
