package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/labmall/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStorage_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storefront.db")

	first, err := OpenSQLite(ctx, path, "default")
	require.NoError(t, err)

	store := NewStore(first)
	require.NoError(t, store.Login(ctx, "tok-abc", &domain.User{ID: 9, Phone: "13800000000"}))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(ctx, path, "default")
	require.NoError(t, err)
	defer second.Close()

	restored := NewStore(second)
	require.NoError(t, restored.Restore(ctx))
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, "tok-abc", restored.Token())
	assert.Equal(t, "13800000000", restored.User().Phone)

	require.NoError(t, restored.Logout(ctx))
	st, err := second.Load(ctx)
	require.NoError(t, err)
	assert.True(t, st.Empty())
}

func TestSQLiteStorage_ProfilesAreIsolated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storefront.db")

	a, err := OpenSQLite(ctx, path, "alice")
	require.NoError(t, err)
	defer a.Close()
	b, err := OpenSQLite(ctx, path, "bob")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Save(ctx, State{Token: "a", User: &domain.User{ID: 1}}))

	st, err := b.Load(ctx)
	require.NoError(t, err)
	assert.True(t, st.Empty())
}

func TestSQLiteStorage_CorruptUserInfoIsDiscarded(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, ":memory:", "default")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO local_storage (profile, key, value) VALUES ('default', 'token', 't'), ('default', 'userInfo', '{not json')`)
	require.NoError(t, err)

	store := NewStore(s)
	require.NoError(t, store.Restore(ctx))
	assert.False(t, store.IsAuthenticated())
}
