package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_EntriesAcceptsBothKeys(t *testing.T) {
	var withItems Page[Order]
	require.NoError(t, json.Unmarshal([]byte(`{"items":[{"id":1}],"total":1}`), &withItems))
	assert.Len(t, withItems.Entries(), 1)

	var withList Page[Order]
	require.NoError(t, json.Unmarshal([]byte(`{"list":[{"id":1},{"id":2}],"total":2}`), &withList))
	assert.Len(t, withList.Entries(), 2)
	assert.Equal(t, int64(2), withList.Entries()[1].ID)

	var empty Page[Order]
	require.NoError(t, json.Unmarshal([]byte(`{"total":0}`), &empty))
	assert.Empty(t, empty.Entries())
}

func TestPage_BareArray(t *testing.T) {
	var p Page[Address]
	require.NoError(t, json.Unmarshal([]byte(` [{"id":3},{"id":4}]`), &p))
	assert.Equal(t, 2, p.Total)
	require.Len(t, p.Entries(), 2)
	assert.Equal(t, int64(4), p.Entries()[1].ID)
}

func TestPageQuery_Normalize(t *testing.T) {
	q := PageQuery{}.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)

	q = PageQuery{Page: 3, PageSize: 50}.Normalize()
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 50, q.PageSize)
}

func TestMoneyKeepsDecimalText(t *testing.T) {
	var p Project
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"name":"XRD","original_price":199.90,"current_price":0.10}`), &p))
	assert.Equal(t, "199.90", p.OriginalPrice.String())
	assert.Equal(t, "0.10", p.CurrentPrice.String())
}

func TestValidPayMethod(t *testing.T) {
	assert.True(t, ValidPayMethod(PayBalance))
	assert.True(t, ValidPayMethod(PayWechat))
	assert.False(t, ValidPayMethod("cash"))
}
