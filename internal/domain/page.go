package domain

import (
	"bytes"
	"encoding/json"
)

// Page is a paginated list. The backend names the slice "items" on some
// endpoints and "list" on others; Entries hides the difference.
type Page[T any] struct {
	Items []T `json:"items,omitempty"`
	List  []T `json:"list,omitempty"`
	Total int `json:"total"`
}

// UnmarshalJSON also accepts a bare array, which some list endpoints return.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*p = Page[T]{Items: items, Total: len(items)}
		return nil
	}

	var aux struct {
		Items []T `json:"items"`
		List  []T `json:"list"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(trimmed, &aux); err != nil {
		return err
	}
	*p = Page[T]{Items: aux.Items, List: aux.List, Total: aux.Total}
	return nil
}

// Entries returns whichever slice the backend populated.
func (p Page[T]) Entries() []T {
	if len(p.Items) > 0 {
		return p.Items
	}
	return p.List
}

// PageQuery selects one page of a list endpoint.
type PageQuery struct {
	Page     int
	PageSize int
}

const DefaultPageSize = 10

// Normalize fills in defaults for unset or out-of-range values.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}
