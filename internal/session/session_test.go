package session

import (
	"context"
	"errors"
	"testing"

	"github.com/labmall/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStorage struct {
	MemoryStorage
	saveErr  error
	clearErr error
}

func (f *failingStorage) Save(ctx context.Context, st State) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryStorage.Save(ctx, st)
}

func (f *failingStorage) Clear(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.MemoryStorage.Clear(ctx)
}

type countingStorage struct {
	MemoryStorage
	clears int
}

func (c *countingStorage) Clear(ctx context.Context) error {
	c.clears++
	return c.MemoryStorage.Clear(ctx)
}

func TestStore_LoginLogoutRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	store := NewStore(storage)

	require.NoError(t, store.Restore(ctx))
	assert.False(t, store.IsAuthenticated())

	require.NoError(t, store.Login(ctx, "tok-1", &domain.User{ID: 7, Nickname: "用户0000"}))
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "tok-1", store.Token())
	assert.Equal(t, int64(7), store.User().ID)

	// a fresh store over the same storage restores the login
	reloaded := NewStore(storage)
	require.NoError(t, reloaded.Restore(ctx))
	assert.True(t, reloaded.IsAuthenticated())

	require.NoError(t, store.Logout(ctx))
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())

	reloaded = NewStore(storage)
	require.NoError(t, reloaded.Restore(ctx))
	assert.False(t, reloaded.IsAuthenticated())
}

func TestStore_LoginRequiresBothHalves(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryStorage())

	assert.ErrorIs(t, store.Login(ctx, "", &domain.User{ID: 1}), domain.ErrIncompleteSession)
	assert.ErrorIs(t, store.Login(ctx, "tok", nil), domain.ErrIncompleteSession)
	assert.False(t, store.IsAuthenticated())
}

func TestStore_RestoreDiscardsHalfSession(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(ctx, State{Token: "orphan"}))

	store := NewStore(storage)
	require.NoError(t, store.Restore(ctx))
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())

	persisted, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.True(t, persisted.Empty())
}

func TestStore_ExpireIsIdempotent(t *testing.T) {
	ctx := context.Background()
	storage := &countingStorage{}
	store := NewStore(storage)

	require.NoError(t, store.Expire(ctx))
	assert.Equal(t, 0, storage.clears, "clearing an anonymous session must not touch storage")

	require.NoError(t, store.Login(ctx, "tok", &domain.User{ID: 1}))
	require.NoError(t, store.Expire(ctx))
	require.NoError(t, store.Expire(ctx))
	assert.Equal(t, 1, storage.clears)
}

func TestStore_SaveFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	storage := &failingStorage{saveErr: errors.New("disk full")}
	store := NewStore(storage)

	err := store.Login(ctx, "tok", &domain.User{ID: 1})
	require.Error(t, err)
	assert.False(t, store.IsAuthenticated())
}

func TestStore_ClearFailureStillDropsMemory(t *testing.T) {
	ctx := context.Background()
	storage := &failingStorage{}
	store := NewStore(storage)
	require.NoError(t, store.Login(ctx, "tok", &domain.User{ID: 1}))

	storage.clearErr = errors.New("read-only")
	require.Error(t, store.Expire(ctx))
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
}

func TestStore_UpdateUser(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryStorage())

	assert.ErrorIs(t, store.UpdateUser(ctx, &domain.User{ID: 1}), domain.ErrNotAuthenticated)

	require.NoError(t, store.Login(ctx, "tok", &domain.User{ID: 1, Nickname: "old"}))
	require.NoError(t, store.UpdateUser(ctx, &domain.User{ID: 1, Nickname: "new"}))
	assert.Equal(t, "new", store.User().Nickname)
	assert.Equal(t, "tok", store.Token())
}

func TestStore_UserIsACopy(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryStorage())
	require.NoError(t, store.Login(ctx, "tok", &domain.User{ID: 1, Nickname: "a"}))

	u := store.User()
	u.Nickname = "mutated"
	assert.Equal(t, "a", store.User().Nickname)
}

func TestStore_OnChange(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryStorage())

	var seen []bool
	store.OnChange(func(st State) { seen = append(seen, st.Authenticated()) })

	require.NoError(t, store.Login(ctx, "tok", &domain.User{ID: 1}))
	require.NoError(t, store.Logout(ctx))
	require.NoError(t, store.Logout(ctx))

	assert.Equal(t, []bool{true, false}, seen)
}
