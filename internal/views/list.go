// Package views holds the per-screen state of the storefront. Each view
// fetches its own endpoints, keeps what the last successful fetch returned,
// and leaves that state untouched when a fetch fails.
package views

import (
	"context"
	"sync"

	"github.com/labmall/storefront/internal/domain"
)

// Fetcher loads one page of a list.
type Fetcher[T any] func(ctx context.Context, q domain.PageQuery) (*domain.Page[T], error)

// ListState is a read-only copy of a List.
type ListState[T any] struct {
	Items    []T  `json:"items"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	Total    int  `json:"total"`
	HasMore  bool `json:"has_more"`
	Loaded   bool `json:"loaded"`
}

// List is a paged list backed by one endpoint. Load replaces the items
// with page one; NextPage appends the following page.
type List[T any] struct {
	fetch    Fetcher[T]
	pageSize int

	mu     sync.RWMutex
	items  []T
	page   int
	total  int
	loaded bool
}

func NewList[T any](pageSize int, fetch Fetcher[T]) *List[T] {
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	return &List[T]{fetch: fetch, pageSize: pageSize}
}

func (l *List[T]) Load(ctx context.Context) error {
	return l.LoadPage(ctx, 1)
}

// LoadPage replaces the list contents with the given page.
func (l *List[T]) LoadPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	res, err := l.fetch(ctx, domain.PageQuery{Page: page, PageSize: l.pageSize})
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]T(nil), res.Entries()...)
	l.page = page
	l.total = res.Total
	l.loaded = true
	return nil
}

// NextPage appends the next page. It is a no-op when nothing is left.
func (l *List[T]) NextPage(ctx context.Context) error {
	l.mu.RLock()
	if !l.loaded {
		l.mu.RUnlock()
		return l.Load(ctx)
	}
	more := l.hasMoreLocked()
	next := l.page + 1
	l.mu.RUnlock()
	if !more {
		return nil
	}

	res, err := l.fetch(ctx, domain.PageQuery{Page: next, PageSize: l.pageSize})
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.page != next-1 {
		// A concurrent Load reset the list; drop this page.
		return nil
	}
	l.items = append(l.items, res.Entries()...)
	l.page = next
	l.total = res.Total
	return nil
}

func (l *List[T]) Refresh(ctx context.Context) error {
	return l.Load(ctx)
}

func (l *List[T]) HasMore() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.hasMoreLocked()
}

func (l *List[T]) hasMoreLocked() bool {
	return l.loaded && l.page*l.pageSize < l.total
}

func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]T(nil), l.items...)
}

func (l *List[T]) Snapshot() ListState[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return ListState[T]{
		Items:    append([]T{}, l.items...),
		Page:     l.page,
		PageSize: l.pageSize,
		Total:    l.total,
		HasMore:  l.hasMoreLocked(),
		Loaded:   l.loaded,
	}
}
