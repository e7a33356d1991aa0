// Package api names every backend endpoint the storefront uses. Each method
// is a thin typed wrapper over the request pipeline; failures have already
// been notified by the time an error is returned.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labmall/storefront/internal/domain"
)

const prefix = "/api/v1"

// Doer is the request pipeline as seen by the endpoint layer.
type Doer interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
	DoRaw(ctx context.Context, method, path string, query url.Values) ([]byte, string, error)
}

type Client struct {
	doer Doer
}

func New(doer Doer) *Client {
	return &Client{doer: doer}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.doer.Do(ctx, http.MethodGet, prefix+path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.doer.Do(ctx, http.MethodPost, prefix+path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.doer.Do(ctx, http.MethodPut, prefix+path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.doer.Do(ctx, http.MethodDelete, prefix+path, nil, nil, out)
}

func pageValues(q domain.PageQuery) url.Values {
	q = q.Normalize()
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("page_size", strconv.Itoa(q.PageSize))
	return v
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}
