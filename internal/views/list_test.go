package views

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labmall/storefront/internal/domain"
)

// pagedInts serves total ints in pages and fails when failOn matches a page.
func pagedInts(total int, failOn *int) Fetcher[int] {
	return func(_ context.Context, q domain.PageQuery) (*domain.Page[int], error) {
		if failOn != nil && *failOn == q.Page {
			return nil, errors.New("boom")
		}
		var items []int
		for i := (q.Page - 1) * q.PageSize; i < total && i < q.Page*q.PageSize; i++ {
			items = append(items, i)
		}
		return &domain.Page[int]{Items: items, Total: total}, nil
	}
}

func TestList_LoadAndNextPage(t *testing.T) {
	ctx := context.Background()
	l := NewList[int](2, pagedInts(5, nil))

	assert.False(t, l.HasMore())
	require.NoError(t, l.Load(ctx))
	assert.Equal(t, []int{0, 1}, l.Items())
	assert.True(t, l.HasMore())

	require.NoError(t, l.NextPage(ctx))
	require.NoError(t, l.NextPage(ctx))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, l.Items())
	assert.False(t, l.HasMore())

	// Nothing left: no fetch, no change.
	require.NoError(t, l.NextPage(ctx))
	snap := l.Snapshot()
	assert.Equal(t, 3, snap.Page)
	assert.Equal(t, 5, snap.Total)
	assert.True(t, snap.Loaded)
}

func TestList_FailureKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	fail := 0
	l := NewList[int](2, pagedInts(5, &fail))
	require.NoError(t, l.Load(ctx))

	fail = 2
	assert.Error(t, l.NextPage(ctx))
	assert.Equal(t, []int{0, 1}, l.Items())
	assert.Equal(t, 1, l.Snapshot().Page)

	fail = 1
	assert.Error(t, l.Refresh(ctx))
	assert.Equal(t, []int{0, 1}, l.Items())
}

func TestList_NextPageBeforeLoad(t *testing.T) {
	l := NewList[int](0, pagedInts(3, nil))
	require.NoError(t, l.NextPage(context.Background()))
	assert.Equal(t, []int{0, 1, 2}, l.Items())
	assert.Equal(t, domain.DefaultPageSize, l.Snapshot().PageSize)
}

func TestList_SnapshotIsACopy(t *testing.T) {
	l := NewList[int](2, pagedInts(2, nil))
	require.NoError(t, l.Load(context.Background()))

	snap := l.Snapshot()
	snap.Items[0] = 99
	assert.Equal(t, 0, l.Items()[0])
}
